// Package scanner lists the audio files that sit directly inside a music directory.
//
// Only regular files whose extension is in the configured allow-list are returned.
// The scan is never recursive: subdirectories, symlinks and unsupported formats are
// invisible to callers.
//
// # Extensions
//
// DefaultExtensions is the allow-list used when configuration does not override it:
//
//	exts := scanner.NewExtensions(cfg.Library.Extensions...)
//	files := scanner.List(afero.NewOsFs(), "/music", exts)
//
// # Failure Semantics
//
// List never fails. An unreadable or missing directory yields an empty slice so that
// reconciliation can proceed with partial information. Use Scan when the caller wants
// to log the underlying error.
package scanner
