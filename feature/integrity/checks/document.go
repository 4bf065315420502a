package checks

import (
	"fmt"
	"strings"

	"library-doctor/core/utils"
	"library-doctor/feature/collection/models"
	collectionReconcile "library-doctor/feature/collection/reconcile"
)

// IssueKind classifies a document integrity finding.
type IssueKind string

const (
	IssueEntriesMismatch   IssueKind = "entries_mismatch"
	IssueCountMismatch     IssueKind = "count_mismatch"
	IssueInvalidCount      IssueKind = "invalid_count"
	IssueDanglingReference IssueKind = "dangling_reference"
	IssueDuplicateTrackID  IssueKind = "duplicate_track_id"
)

// CollectionPath is the issue path used for the COLLECTION element.
const CollectionPath = "COLLECTION"

// Issue is a single finding. Findings are flags; the document is never modified.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Path     string    `json:"path"`
	TrackID  string    `json:"track_id,omitempty"`
	Key      string    `json:"key,omitempty"`
	Declared string    `json:"declared,omitempty"`
	Actual   int       `json:"actual"`
	Message  string    `json:"message"`
}

// DocumentReport aggregates the document integrity checks.
type DocumentReport struct {
	Entries    []Issue         `json:"entries"`
	References []Issue         `json:"references"`
	TrackIDs   []Issue         `json:"track_ids"`
	Summary    DocumentSummary `json:"summary"`
}

// DocumentSummary provides aggregate statistics for a document report.
type DocumentSummary struct {
	Tracks    int `json:"tracks"`
	Folders   int `json:"folders"`
	Playlists int `json:"playlists"`
	Issues    int `json:"issues"`
}

// OK reports whether no check found anything.
func (r *DocumentReport) OK() bool {
	return r.Summary.Issues == 0
}

// CheckDocument runs every document check.
func CheckDocument(doc *models.Document) *DocumentReport {
	report := &DocumentReport{
		Entries:    CheckEntries(doc),
		References: CheckReferences(doc),
		TrackIDs:   CheckTrackIDs(doc),
	}

	report.Summary.Tracks = len(doc.Collection.Tracks)
	models.Walk(doc.Root, func(_ []string, n models.Node) bool {
		switch n.(type) {
		case *models.Folder:
			report.Summary.Folders++
		case *models.Playlist:
			report.Summary.Playlists++
		}
		return true
	})
	report.Summary.Issues = len(report.Entries) + len(report.References) + len(report.TrackIDs)
	return report
}

// CheckEntries compares declared counts with actual child counts:
// the collection's Entries, each folder's Count and each playlist's Entries.
// Absent attributes are not checked; unparseable ones are flagged.
func CheckEntries(doc *models.Document) []Issue {
	issues := []Issue{}

	if doc.Collection.Entries != nil {
		if issue, ok := compareCount(IssueEntriesMismatch, CollectionPath, "Entries", *doc.Collection.Entries, len(doc.Collection.Tracks)); !ok {
			issues = append(issues, issue)
		}
	}

	models.Walk(doc.Root, func(path []string, n models.Node) bool {
		p := strings.Join(path, "/")
		switch v := n.(type) {
		case *models.Folder:
			if v.Count != nil {
				if issue, ok := compareCount(IssueCountMismatch, p, "Count", *v.Count, len(v.Children)); !ok {
					issues = append(issues, issue)
				}
			}
		case *models.Playlist:
			if v.Entries != nil {
				if issue, ok := compareCount(IssueEntriesMismatch, p, "Entries", *v.Entries, len(v.Tracks)); !ok {
					issues = append(issues, issue)
				}
			}
		}
		return true
	})

	return issues
}

func compareCount(kind IssueKind, path, attr, declared string, actual int) (Issue, bool) {
	n, err := utils.ParseCount(declared)
	if err != nil {
		return Issue{
			Kind:     IssueInvalidCount,
			Path:     path,
			Declared: declared,
			Actual:   actual,
			Message:  fmt.Sprintf("%s %s", attr, err),
		}, false
	}
	if n != actual {
		return Issue{
			Kind:     kind,
			Path:     path,
			Declared: declared,
			Actual:   actual,
			Message:  fmt.Sprintf("%s declares %d but holds %d", attr, n, actual),
		}, false
	}
	return Issue{}, true
}

// CheckReferences flags playlist references that resolve to no collection track.
func CheckReferences(doc *models.Document) []Issue {
	issues := []Issue{}
	idx := collectionReconcile.NewTrackIndex(doc)

	models.Walk(doc.Root, func(path []string, n models.Node) bool {
		p, ok := n.(*models.Playlist)
		if !ok {
			return true
		}
		for _, ref := range p.Tracks {
			if _, found := idx.Resolve(p, ref); found {
				continue
			}
			issues = append(issues, Issue{
				Kind:    IssueDanglingReference,
				Path:    strings.Join(path, "/"),
				Key:     ref.Key,
				Message: fmt.Sprintf("key %q matches no track (KeyType %s)", ref.Key, utils.Deref(p.KeyType, collectionReconcile.KeyTypeTrackID)),
			})
		}
		return true
	})

	return issues
}

// CheckTrackIDs flags TrackID values used by more than one track, in order of first use.
func CheckTrackIDs(doc *models.Document) []Issue {
	issues := []Issue{}
	counts := make(map[string]int, len(doc.Collection.Tracks))
	var order []string

	for _, t := range doc.Collection.Tracks {
		if counts[t.TrackID] == 0 {
			order = append(order, t.TrackID)
		}
		counts[t.TrackID]++
	}

	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssueDuplicateTrackID,
			Path:    CollectionPath,
			TrackID: id,
			Actual:  counts[id],
			Message: fmt.Sprintf("TrackID %q is used by %d tracks", id, counts[id]),
		})
	}

	return issues
}
