// Package integrity provides health checks for the library and its surroundings.
//
// Unlike reconciliation, which compares the document against the music directory,
// this package validates the document itself and the infrastructure it is
// published to. Every check only flags; nothing is repaired except the publish
// folder layout on explicit request.
//
// # Checks Provided
//
//   - Document: Declared Entries/Count attributes, playlist references and duplicate TrackIDs.
//   - Structure: Checks if the publish folders (exports, reports) exist in the storage bucket.
//   - Published: Downloads the latest export and report and verifies that they decode.
//   - Server: Validates that the history table matches the expected GORM model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/document : Runs the document checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/published : Verifies the latest published objects.
//   - GET /integrity/server : Runs server schema check.
package integrity
