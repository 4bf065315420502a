// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the graceful
// shutdown bound.
package server
