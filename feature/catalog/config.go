package catalog

// Config holds the default run configuration. Command-line flags override it.
type Config struct {
	// MasterLocation is the master feed (path, file://, http(s):// or s3://bucket/key).
	MasterLocation string `mapstructure:"master_location" default:""`
	// MasterProfile names the profile the master feed is read with.
	MasterProfile string `mapstructure:"master_profile" default:"xml_suuhouse"`
	// SupplementLocation is the supplement feed.
	SupplementLocation string `mapstructure:"supplement_location" default:""`
	// SupplementProfile names the profile the supplement feed is read with.
	SupplementProfile string `mapstructure:"supplement_profile" default:"json_mebloszyk"`
	// ProfilesFile is an optional YAML file with additional profiles.
	ProfilesFile string `mapstructure:"profiles_file" default:""`
	// ExportPath is the local file the JSON export is written to. Empty disables it.
	ExportPath string `mapstructure:"export_path" default:""`
	// ExportObject is the object key in the storage bucket the export is uploaded to. Empty disables it.
	ExportObject string `mapstructure:"export_object" default:""`
	// Persist replaces the products table with the result.
	Persist bool `mapstructure:"persist" default:"false"`
}
