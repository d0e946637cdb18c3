// Package config loads application configuration with Viper.
//
// Values come from environment variables, optionally seeded from a .env
// file. Every field declares its default in a `default` struct tag; nested
// keys map to upper-case, underscore-joined variables (database.driver ->
// DATABASE_DRIVER).
//
// # Configuration Structure
//
//   - Log: level and encoding
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the export bucket
//   - Reconcile: default master/supplement locations and profiles, the
//     profiles file, export targets and the persist switch
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Reconcile.MasterProfile)
package config
