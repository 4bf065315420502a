package reconcile

// Source supplies the tracks a reconciliation run works on.
// Adapters flatten format-specific documents into TrackLocation values.
type Source interface {
	// Name identifies the source in logs and reports (e.g., the document path).
	Name() string

	// Tracks returns the tracks in document order.
	Tracks() []TrackLocation
}

// StaticSource is a Source over a fixed slice of tracks.
type StaticSource []TrackLocation

// Name returns "static".
func (s StaticSource) Name() string {
	return "static"
}

// Tracks returns the slice itself.
func (s StaticSource) Tracks() []TrackLocation {
	return s
}
