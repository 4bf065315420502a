package reconcile

import (
	"library-doctor/core/reconcile"
	"library-doctor/feature/collection/models"
)

// DocumentAdapter implements the reconcile.Source interface for a decoded library document.
type DocumentAdapter struct {
	name string
	doc  *models.Document
}

// NewAdapter creates an adapter over doc. name is usually the document path.
func NewAdapter(name string, doc *models.Document) *DocumentAdapter {
	return &DocumentAdapter{name: name, doc: doc}
}

// Name returns the name the adapter was created with.
func (a *DocumentAdapter) Name() string {
	return a.name
}

// Tracks flattens the collection into engine input, in document order.
func (a *DocumentAdapter) Tracks() []reconcile.TrackLocation {
	if a.doc == nil {
		return nil
	}
	tracks := make([]reconcile.TrackLocation, 0, len(a.doc.Collection.Tracks))
	for _, t := range a.doc.Collection.Tracks {
		tracks = append(tracks, reconcile.TrackLocation{
			TrackID:  t.TrackID,
			Name:     t.Name,
			Location: t.Location,
		})
	}
	return tracks
}
