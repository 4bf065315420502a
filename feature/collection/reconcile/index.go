package reconcile

import "library-doctor/feature/collection/models"

// Key types used by playlist nodes.
const (
	KeyTypeTrackID  = "0"
	KeyTypeLocation = "1"
)

// TrackIndex resolves playlist references against the collection.
// When identifiers repeat, the first track in document order wins.
type TrackIndex struct {
	byID       map[string]*models.Track
	byLocation map[string]*models.Track
}

// NewTrackIndex indexes every track in the collection.
func NewTrackIndex(doc *models.Document) *TrackIndex {
	idx := &TrackIndex{
		byID:       make(map[string]*models.Track),
		byLocation: make(map[string]*models.Track),
	}
	if doc == nil {
		return idx
	}
	for i := range doc.Collection.Tracks {
		t := &doc.Collection.Tracks[i]
		if _, ok := idx.byID[t.TrackID]; !ok {
			idx.byID[t.TrackID] = t
		}
		if _, ok := idx.byLocation[t.Location]; !ok {
			idx.byLocation[t.Location] = t
		}
	}
	return idx
}

// ByID returns the track with the given TrackID.
func (idx *TrackIndex) ByID(id string) (*models.Track, bool) {
	t, ok := idx.byID[id]
	return t, ok
}

// ByLocation returns the track with the given location URI.
func (idx *TrackIndex) ByLocation(location string) (*models.Track, bool) {
	t, ok := idx.byLocation[location]
	return t, ok
}

// Resolve looks a playlist reference up according to the playlist's key type.
// A playlist without KeyType is treated as keyed by TrackID.
func (idx *TrackIndex) Resolve(p *models.Playlist, ref models.NodeTrackRef) (*models.Track, bool) {
	if p.KeyType != nil && *p.KeyType == KeyTypeLocation {
		return idx.ByLocation(ref.Key)
	}
	return idx.ByID(ref.Key)
}

// PlaylistTracks resolves every reference of p, skipping the ones that match no track.
func (idx *TrackIndex) PlaylistTracks(p *models.Playlist) []*models.Track {
	tracks := make([]*models.Track, 0, len(p.Tracks))
	for _, ref := range p.Tracks {
		if t, ok := idx.Resolve(p, ref); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks
}
