package exchange

// Config holds configuration for the exchange-rate client.
type Config struct {
	// PrimaryEndpoint is the base URL of the preferred rate provider; the
	// source currency code is appended as the last path segment.
	PrimaryEndpoint string `mapstructure:"primary_endpoint" default:"https://open.er-api.com/v6/latest"`
	// BackupEndpoint is tried when the primary fails or times out.
	BackupEndpoint string `mapstructure:"backup_endpoint" default:"https://api.exchangerate-api.com/v4/latest"`
	// TimeoutSeconds bounds each provider request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
