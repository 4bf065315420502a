// Package models defines the in-memory form of a DJ_PLAYLISTS library export.
//
// The model is passive: it is built once by the codec, read by the reconciliation
// and integrity checks, and handed back to the codec for serialization.
//
// # Opaque Attributes
//
// Numeric and temporal attributes (Size, TotalTime, AverageBpm, DateAdded...) are
// kept as strings. Reformatting them through native types would drift locale,
// precision or leading zeros on write.
//
// # Playlist Tree
//
// NODE elements are a sum type behind the Node interface:
//
//	switch n := node.(type) {
//	case *models.Folder:   // n.Children
//	case *models.Playlist: // n.Tracks
//	}
//
// Optional attributes are pointers and child lists are nil when absent, so absent
// and empty never collapse into each other.
//
// Playlist entries are NodeTrackRef keys, not pointers. Resolving them against the
// collection is left to the consumers.
package models
