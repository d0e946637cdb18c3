// Package database opens GORM connections for the catalog store.
//
// Connect builds a dialector for the configured driver (mysql, postgres or
// sqlite), silences GORM's own logger and pings the database before returning.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read an existing table through the GORM
// migrator, so the same check works on every driver. The catalog store uses
// them to detect a products table created by an older schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "products", columns)
package database
