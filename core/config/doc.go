// Package config provides configuration management for the library doctor.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv). Defaults come from the `default` struct
// tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: optional MySQL connection for run history
//   - Storage: S3/MinIO credentials and the publish bucket
//   - Log: Logging level and format
//   - Library: document path, music directory, extensions and cache lifetime
//
// Nested keys map to upper-case environment variables, e.g. library.music_dir
// is read from LIBRARY_MUSIC_DIR.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Library.MusicDir)
package config
