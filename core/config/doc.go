// Package config provides configuration management for the Donation Manager.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file, and struct-tag defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, admin key, environment)
//   - Database: primary database connection (sqlite or MySQL)
//   - Storage: backup archive credentials and bucket settings
//   - Exchange: exchange-rate provider endpoints
//   - Retention: default data-retention window for new users
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
