// Package history persists reconciliation runs in the optional MySQL database.
//
// Each run stores the summary counts of one report together with the source
// document and the scanned directory, so trends can be followed over time.
//
// # HTTP Endpoints
//
//   - GET /history : Lists the latest runs (supports ?limit=N, capped at 100).
package history
