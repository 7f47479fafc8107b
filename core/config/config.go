package config

import (
	"reflect"
	"strings"

	"donation-manager/core/database"
	"donation-manager/core/exchange"
	"donation-manager/core/logger"
	"donation-manager/core/server"
	"donation-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RetentionConfig holds defaults for transaction data retention.
type RetentionConfig struct {
	// DefaultDays is the retention window assigned to newly created users.
	DefaultDays int `mapstructure:"default_days" default:"10"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the primary database connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the backup archive (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Exchange holds configuration for the exchange-rate providers.
	Exchange exchange.Config `mapstructure:"exchange"`
	// Retention holds data-retention defaults.
	Retention RetentionConfig `mapstructure:"retention"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
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

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
