package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"library-doctor/core/metrics"
	"library-doctor/core/reconcile"
	"library-doctor/feature/collection/codec"
	"library-doctor/feature/history"
	"library-doctor/feature/integrity/checks"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	contentTypeXML  = "application/xml"
	contentTypeJSON = "application/json"
)

// PublishResult describes one publication.
type PublishResult struct {
	RunID   string            `json:"run_id"`
	Objects []string          `json:"objects"`
	Pruned  []string          `json:"pruned"`
	Summary reconcile.Summary `json:"summary"`
}

// Publish reconciles the document and uploads the re-encoded export and the report.
// Each is written as latest and as a timestamped snapshot; snapshots beyond the
// configured retention are removed, oldest first.
func (s *Service) Publish(ctx context.Context) (*PublishResult, error) {
	result, err := s.publish(ctx)
	metrics.PublishTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		s.logger.Error("Publish failed", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *Service) publish(ctx context.Context) (*PublishResult, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	export, err := codec.Marshal(doc)
	if err != nil {
		return nil, err
	}

	// The export and the report come from the same read of the document
	rec, err := s.reconcileDocument(ctx, doc, false)
	if err != nil {
		return nil, err
	}
	report, err := json.MarshalIndent(rec.Report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	prefix := s.cfg.PublishPrefix
	stamp := snapshotName(rec.Run)
	uploads := []struct {
		key         string
		data        []byte
		contentType string
	}{
		{checks.ObjectKey(prefix, path.Join(checks.ExportsFolder, stamp+".xml")), export, contentTypeXML},
		{checks.ObjectKey(prefix, path.Join(checks.ReportsFolder, stamp+".json")), report, contentTypeJSON},
		{checks.ObjectKey(prefix, checks.LatestExport), export, contentTypeXML},
		{checks.ObjectKey(prefix, checks.LatestReport), report, contentTypeJSON},
	}

	out := &PublishResult{RunID: rec.Run.ID, Summary: rec.Report.Summary}
	for _, u := range uploads {
		_, err := s.client.PutObject(ctx, s.bucket, u.key, bytes.NewReader(u.data), int64(len(u.data)), minio.PutObjectOptions{
			ContentType: u.contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", u.key, err)
		}
		s.logger.Debug("Uploaded object", zap.String("key", u.key), zap.Int("size", len(u.data)))
		out.Objects = append(out.Objects, u.key)
	}

	for _, folder := range checks.RequiredFolders {
		pruned, err := s.prune(ctx, checks.ObjectKey(prefix, folder))
		if err != nil {
			return nil, err
		}
		out.Pruned = append(out.Pruned, pruned...)
	}

	s.logger.Info("Published library",
		zap.String("run_id", out.RunID),
		zap.Strings("objects", out.Objects),
		zap.Int("pruned", len(out.Pruned)),
	)
	return out, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	s.logger.Info("Creating bucket", zap.String("bucket", s.bucket))
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// prune removes the oldest snapshots under folder beyond the retention limit.
func (s *Service) prune(ctx context.Context, folder string) ([]string, error) {
	if s.cfg.PublishRetain <= 0 {
		return nil, nil
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var snapshots []string
	opts := minio.ListObjectsOptions{Prefix: folder + "/", Recursive: true}
	for obj := range s.client.ListObjects(listCtx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		if isSnapshot(obj.Key) {
			snapshots = append(snapshots, obj.Key)
		}
	}

	if len(snapshots) <= s.cfg.PublishRetain {
		return nil, nil
	}

	// Snapshot names start with a UTC timestamp, so lexical order is chronological.
	sort.Strings(snapshots)
	stale := snapshots[:len(snapshots)-s.cfg.PublishRetain]
	for _, key := range stale {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return stale, nil
}

// snapshotName builds the timestamped object name for a run.
func snapshotName(run *history.Run) string {
	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return run.CreatedAt.UTC().Format("20060102T150405Z") + "-" + id
}

// isSnapshot excludes folder markers and the latest objects.
func isSnapshot(key string) bool {
	if strings.HasSuffix(key, "/") {
		return false
	}
	return !strings.HasPrefix(path.Base(key), "latest.")
}
