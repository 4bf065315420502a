package history

import (
	"time"

	"library-doctor/core/reconcile"

	"github.com/google/uuid"
)

// Run is one recorded reconciliation run.
type Run struct {
	ID                   string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CreatedAt            time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
	Source               string    `gorm:"column:source;type:varchar(512)" json:"source"`
	Directory            string    `gorm:"column:directory;type:varchar(512)" json:"directory"`
	TotalTracks          int       `gorm:"column:total_tracks;type:int" json:"total_tracks"`
	OK                   int       `gorm:"column:ok;type:int" json:"ok"`
	Missing              int       `gorm:"column:missing;type:int" json:"missing"`
	Unresolvable         int       `gorm:"column:unresolvable;type:int" json:"unresolvable"`
	NotImported          int       `gorm:"column:not_imported;type:int" json:"not_imported"`
	Duplicates           int       `gorm:"column:duplicates;type:int" json:"duplicates"`
	RelocatableUnique    int       `gorm:"column:relocatable_unique;type:int" json:"relocatable_unique"`
	RelocatableAmbiguous int       `gorm:"column:relocatable_ambiguous;type:int" json:"relocatable_ambiguous"`
	DurationMs           int64     `gorm:"column:duration_ms;type:bigint" json:"duration_ms"`
}

// TableName overrides the table name used by Run to `reconcile_runs`.
func (Run) TableName() string {
	return "reconcile_runs"
}

// NewRun builds a run from a report summary.
func NewRun(source, directory string, s reconcile.Summary, elapsed time.Duration) *Run {
	return &Run{
		ID:                   uuid.NewString(),
		CreatedAt:            time.Now().UTC(),
		Source:               source,
		Directory:            directory,
		TotalTracks:          s.TotalTracks,
		OK:                   s.OK,
		Missing:              s.Missing,
		Unresolvable:         s.Unresolvable,
		NotImported:          s.NotImported,
		Duplicates:           s.Duplicates,
		RelocatableUnique:    s.RelocatableUnique,
		RelocatableAmbiguous: s.RelocatableAmbiguous,
		DurationMs:           elapsed.Milliseconds(),
	}
}
