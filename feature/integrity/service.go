package integrity

import (
	"context"
	"fmt"

	"library-doctor/core/metrics"
	"library-doctor/core/storage"
	"library-doctor/feature/collection/models"
	"library-doctor/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentProvider supplies the current library document.
type DocumentProvider interface {
	Document(ctx context.Context) (*models.Document, error)
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
	docs   DocumentProvider
}

// NewService creates a new integrity service.
// client, db and docs may be nil; the checks that need them then fail with an error.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB, docs DocumentProvider) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
		docs:   docs,
	}
}

// CheckDocument runs the document checks on the current library document.
func (s *Service) CheckDocument(ctx context.Context) (*checks.DocumentReport, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("no library document configured")
	}
	doc, err := s.docs.Document(ctx)
	if err != nil {
		return nil, err
	}

	report := checks.CheckDocument(doc)
	metrics.IntegrityIssues.WithLabelValues("entries").Set(float64(len(report.Entries)))
	metrics.IntegrityIssues.WithLabelValues("references").Set(float64(len(report.References)))
	metrics.IntegrityIssues.WithLabelValues("track_ids").Set(float64(len(report.TrackIDs)))
	return report, nil
}

// CheckStructure returns the publish folders missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("no storage client configured")
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.prefix)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return fmt.Errorf("no storage client configured")
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.prefix, s.logger, missing)
}

// CheckPublished verifies the latest published export and report.
func (s *Service) CheckPublished(ctx context.Context) (*checks.PublicationReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("no storage client configured")
	}
	return checks.CheckPublished(ctx, s.client, s.bucket, s.prefix)
}

// CheckServer compares the history schema with the live database.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db)
}
