package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"library-doctor/core/library"
	"library-doctor/core/metrics"
	"library-doctor/core/reconcile"
	"library-doctor/core/storage"
	"library-doctor/feature/collection/codec"
	"library-doctor/feature/collection/models"
	collectionReconcile "library-doctor/feature/collection/reconcile"
	"library-doctor/feature/history"
	"library-doctor/feature/integrity/checks"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoStorage is returned by Publish when no storage client is configured.
var ErrNoStorage = errors.New("publishing requires a storage client")

// Result pairs a reconciliation report with the run that produced it.
type Result struct {
	Run    *history.Run      `json:"run"`
	Report *reconcile.Report `json:"report"`
}

// Service handles library document operations.
type Service struct {
	cfg    library.Config
	fs     afero.Fs
	engine *reconcile.Engine
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cache  *documentCache
}

// NewService creates a new collection service.
// client and db may be nil; publishing and run history are then unavailable.
func NewService(fs afero.Fs, cfg library.Config, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		fs:     fs,
		engine: reconcile.NewEngine(fs, cfg.ExtensionSet()),
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cache:  newDocumentCache(cfg.CacheTTL()),
	}
}

// Document returns the configured library document, decoding it when the cached copy is stale.
func (s *Service) Document(ctx context.Context) (*models.Document, error) {
	return s.cache.get(ctx, func(context.Context) (*models.Document, error) {
		s.logger.Debug("Loading library document", zap.String("document", s.cfg.Document))
		return LoadDocument(s.fs, s.cfg.Document)
	})
}

// Invalidate drops the cached document so the next call reads it again.
func (s *Service) Invalidate() {
	s.cache.invalidate()
}

// Reconcile checks the document's tracks against the music directory.
// The run is recorded in history when a database is configured; a failure to record is only logged.
func (s *Service) Reconcile(ctx context.Context) (*Result, error) {
	return s.reconcile(ctx, false)
}

// ReconcileRecorded is Reconcile for callers that need the run stored.
// A missing database or a failed insert is returned as an error.
func (s *Service) ReconcileRecorded(ctx context.Context) (*Result, error) {
	return s.reconcile(ctx, true)
}

func (s *Service) reconcile(ctx context.Context, mustRecord bool) (*Result, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return s.reconcileDocument(ctx, doc, mustRecord)
}

// reconcileDocument runs the engine over an already loaded document.
func (s *Service) reconcileDocument(ctx context.Context, doc *models.Document, mustRecord bool) (*Result, error) {
	start := time.Now()
	report := s.engine.Run(collectionReconcile.NewAdapter(s.cfg.Document, doc), s.cfg.MusicDir)
	elapsed := time.Since(start)

	metrics.ObserveReconcile(report.Summary, elapsed)
	run := history.NewRun(s.cfg.Document, s.cfg.MusicDir, report.Summary, elapsed)

	s.logger.Info("Reconciliation finished",
		zap.String("run_id", run.ID),
		zap.Int("tracks", report.Summary.TotalTracks),
		zap.Int("missing", report.Summary.Missing),
		zap.Int("not_imported", report.Summary.NotImported),
		zap.Int("duplicates", report.Summary.Duplicates),
		zap.Duration("duration", elapsed),
	)

	if s.db != nil || mustRecord {
		if err := history.Record(ctx, s.db, run); err != nil {
			if mustRecord {
				return nil, fmt.Errorf("failed to record run %s: %w", run.ID, err)
			}
			s.logger.Warn("Failed to record reconciliation run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	return &Result{Run: run, Report: report}, nil
}

// Plan reconciles and turns the report into suggested follow-ups.
func (s *Service) Plan(ctx context.Context) (*reconcile.Plan, error) {
	result, err := s.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.BuildPlan(result.Report), nil
}

// Integrity runs the flag-only document checks.
func (s *Service) Integrity(ctx context.Context) (*checks.DocumentReport, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckDocument(doc), nil
}

// Export writes the document, re-encoded, to w.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	return codec.Encode(w, doc)
}
