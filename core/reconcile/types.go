package reconcile

// TrackLocation is the slice of a track the engine needs.
type TrackLocation struct {
	// TrackID is the document identifier of the track.
	TrackID string

	// Name is the display name of the track.
	Name string

	// Location is the raw file-scheme URI declared by the document.
	Location string
}

// MissingTrack describes a track whose resolved file does not exist.
type MissingTrack struct {
	// TrackID is the document identifier of the track.
	TrackID string `json:"track_id"`

	// Name is the display name of the track.
	Name string `json:"name"`

	// Location is the location URI exactly as declared by the document.
	Location string `json:"location"`

	// Path is the filesystem path the location resolved to.
	Path string `json:"path"`
}

// RelocationStatus tells whether a relocation group can be applied without a human decision.
type RelocationStatus string

const (
	// RelocationUnique means exactly one candidate file matched.
	RelocationUnique RelocationStatus = "unique"
	// RelocationAmbiguous means several candidate files matched and one must be chosen manually.
	RelocationAmbiguous RelocationStatus = "ambiguous"
)

// RelocationGroup collects the not-imported files matching one missing file name.
type RelocationGroup struct {
	// Status is unique for a single candidate and ambiguous otherwise.
	Status RelocationStatus `json:"status"`

	// Candidates are the full paths of matching not-imported files.
	Candidates []string `json:"candidates"`

	// TrackIDs are the missing tracks that share the file name.
	TrackIDs []string `json:"track_ids"`

	// SuggestedLocation is the location URI of the single candidate.
	// Only populated for unique groups.
	SuggestedLocation string `json:"suggested_location,omitempty"`
}

// Report is the outcome of one reconciliation run.
type Report struct {
	// Missing lists tracks whose resolved file does not exist, in document order.
	Missing []MissingTrack `json:"missing"`

	// NotImported lists directory files no track references, sorted.
	NotImported []string `json:"not_imported"`

	// Duplicates maps a track's path to other listed files with the same file name.
	Duplicates map[string][]string `json:"duplicates"`

	// Relocated maps a missing file name to its relocation candidates.
	Relocated map[string]*RelocationGroup `json:"relocated"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a report.
type Summary struct {
	// TotalTracks is the number of tracks in the source.
	TotalTracks int `json:"total_tracks"`

	// OK counts tracks whose file exists.
	OK int `json:"ok"`

	// Missing counts tracks whose file does not exist.
	Missing int `json:"missing"`

	// Unresolvable counts tracks whose location is not a usable file URI.
	Unresolvable int `json:"unresolvable"`

	// NotImported counts directory files no track references.
	NotImported int `json:"not_imported"`

	// Duplicates counts track paths with at least one same-named sibling.
	Duplicates int `json:"duplicates"`

	// RelocatableUnique counts relocation groups with exactly one candidate.
	RelocatableUnique int `json:"relocatable_unique"`

	// RelocatableAmbiguous counts relocation groups with several candidates.
	RelocatableAmbiguous int `json:"relocatable_ambiguous"`
}

// NewReport returns an empty report with all collections initialized.
func NewReport() *Report {
	return &Report{
		Missing:     []MissingTrack{},
		NotImported: []string{},
		Duplicates:  make(map[string][]string),
		Relocated:   make(map[string]*RelocationGroup),
	}
}
