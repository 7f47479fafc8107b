package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ProjectName is used in export filenames and startup logs.
	ProjectName string `mapstructure:"project_name" default:"Ko-fi API"`
	// AdminKey is the secret required for admin and database operations.
	AdminKey string `mapstructure:"admin_key" default:"changethis"`
	// Environment is the deployment environment (local, staging, production).
	Environment string `mapstructure:"environment" default:"local"`
}

const (
	EnvironmentLocal      = "local"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "production"
)

// DefaultAdminKey is the placeholder secret shipped in the example config.
const DefaultAdminKey = "changethis"

// IsValidEnvironment checks if the configured environment is valid.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvironmentLocal, EnvironmentStaging, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// HasDefaultAdminKey reports whether the admin key was left at its placeholder
// value. Deployments outside the local environment must not keep it.
func (c Config) HasDefaultAdminKey() bool {
	return c.AdminKey == DefaultAdminKey
}
