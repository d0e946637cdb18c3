package config

import (
	"reflect"
	"strings"

	"catalog-reconciler/core/database"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/storage"
	"catalog-reconciler/feature/catalog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the products database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Reconcile holds the default run configuration.
	Reconcile catalog.Config `mapstructure:"reconcile"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// RECONCILE_MASTER_LOCATION -> reconcile.master_location
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key in Viper
// with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registered even when empty so AutomaticEnv picks the key up.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
