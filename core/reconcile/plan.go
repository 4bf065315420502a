package reconcile

import (
	"fmt"
	"path/filepath"
)

// ActionType represents the kind of follow-up a finding calls for.
type ActionType string

const (
	// ActionRelocate points a missing track at its single relocation candidate.
	ActionRelocate ActionType = "relocate"
	// ActionChoose asks a human to pick one of several relocation candidates.
	ActionChoose ActionType = "choose"
	// ActionLocate flags a missing track with no candidate in the directory.
	ActionLocate ActionType = "locate"
	// ActionImport flags a file nobody references and that relocates nothing.
	ActionImport ActionType = "import"
)

// Action is a suggested follow-up for one finding.
// Actions are advisory; nothing in this package applies them.
type Action struct {
	// Type specifies the suggested follow-up.
	Type ActionType `json:"type"`

	// TrackID is the affected track. Empty for ActionImport.
	TrackID string `json:"track_id,omitempty"`

	// Key is the path the action is about.
	Key string `json:"key"`

	// Reason explains why this action is suggested.
	Reason string `json:"reason"`

	// Candidates lists the files involved in relocate and choose actions.
	Candidates []string `json:"candidates,omitempty"`

	// Location is the replacement location URI for ActionRelocate.
	Location string `json:"location,omitempty"`
}

// Plan contains the suggested actions derived from a report.
type Plan struct {
	// Actions are ordered: missing tracks in document order, then files to import.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts per action type.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Relocate int `json:"relocate"`
	Choose   int `json:"choose"`
	Locate   int `json:"locate"`
	Import   int `json:"import"`
}

// BuildPlan turns a report into human-reviewable suggestions.
func BuildPlan(report *Report) *Plan {
	plan := &Plan{Actions: []Action{}}
	candidates := make(map[string]struct{})

	for _, m := range report.Missing {
		name := filepath.Base(m.Path)
		group, ok := report.Relocated[name]
		if !ok || len(group.Candidates) == 0 {
			plan.add(Action{
				Type:    ActionLocate,
				TrackID: m.TrackID,
				Key:     m.Path,
				Reason:  fmt.Sprintf("no file named %q in the scanned directory", name),
			})
			continue
		}

		for _, c := range group.Candidates {
			candidates[c] = struct{}{}
		}

		if group.Status == RelocationUnique {
			plan.add(Action{
				Type:       ActionRelocate,
				TrackID:    m.TrackID,
				Key:        m.Path,
				Reason:     "found one matching filename",
				Candidates: group.Candidates,
				Location:   group.SuggestedLocation,
			})
			continue
		}

		plan.add(Action{
			Type:       ActionChoose,
			TrackID:    m.TrackID,
			Key:        m.Path,
			Reason:     fmt.Sprintf("found %d matching filenames, not safe to relocate automatically", len(group.Candidates)),
			Candidates: group.Candidates,
		})
	}

	for _, f := range report.NotImported {
		if _, ok := candidates[f]; ok {
			continue
		}
		plan.add(Action{
			Type:   ActionImport,
			Key:    f,
			Reason: "file is not referenced by any track",
		})
	}

	return plan
}

func (p *Plan) add(a Action) {
	p.Actions = append(p.Actions, a)
	switch a.Type {
	case ActionRelocate:
		p.Summary.Relocate++
	case ActionChoose:
		p.Summary.Choose++
	case ActionLocate:
		p.Summary.Locate++
	case ActionImport:
		p.Summary.Import++
	}
}
