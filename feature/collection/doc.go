// Package collection serves the configured DJ library document.
//
// The Service decodes the document through an afero filesystem, caches it for
// the configured TTL and runs reconciliation, integrity checks, export and
// publication to object storage on top of it. Reconciliation runs are
// recorded in the history table when a database is available.
package collection
