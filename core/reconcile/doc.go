// Package reconcile cross-references the track locations declared by a library
// document against the audio files actually present in a music directory.
//
// A run executes four independent checks and appends their findings to a single
// Report:
//
//  1. Existence: every track whose file-scheme location resolves to a path that does
//     not exist is recorded as missing. Locations that cannot be resolved (other
//     schemes, malformed URIs) are skipped, not reported as missing.
//  2. Not imported: files in the directory listing that no track references.
//  3. Duplicates: for each track path, other listed files sharing its file name.
//  4. Relocation: not-imported files whose name matches a missing track's file name.
//     Each group is tagged unique or ambiguous; only unique groups carry a suggested
//     replacement location, and nothing is ever applied automatically.
//
// # Architecture
//
// The engine is decoupled from the document format through the Source interface.
// The collection feature provides an adapter that flattens a parsed document into
// TrackLocation values (see feature/collection/reconcile).
//
// The directory listing comes from core/scanner and is always a single,
// non-recursive directory filtered by the extension allow-list.
//
// # Failure Semantics
//
// No check returns an error. Unresolvable locations, unreadable directories and
// zero-match lookups all degrade to empty contributions.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(afero.NewOsFs(), scanner.NewExtensions())
//	report := engine.Run(source, "/Users/dj/Music")
//	for name, group := range report.Relocated {
//	    fmt.Println(name, group.Status, group.Candidates)
//	}
package reconcile
