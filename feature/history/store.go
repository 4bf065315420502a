package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit and MaxLimit bound the number of runs returned by Recent.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrNoDatabase is returned when history is requested without a database connection.
var ErrNoDatabase = errors.New("history requires a database connection")

// Migrate creates or updates the runs table.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return ErrNoDatabase
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Run{}.TableName(), err)
	}
	return nil
}

// Record stores a run.
func Record(ctx context.Context, db *gorm.DB, run *Run) error {
	if db == nil {
		return ErrNoDatabase
	}
	if err := db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
// A non-positive limit falls back to DefaultLimit; limits above MaxLimit are capped.
func Recent(ctx context.Context, db *gorm.DB, limit int) ([]Run, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var runs []Run
	if err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return runs, nil
}
