// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structures and valid values for server
// settings, such as the deployment environment and the admin secret.
//
// # Configuration
//
// The Config struct defines the HTTP port, project name, admin key and the
// deployment environment (local, staging, production). Non-local environments
// refuse to start with the placeholder admin key.
package server
