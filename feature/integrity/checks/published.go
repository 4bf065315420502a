package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"library-doctor/core/reconcile"
	"library-doctor/core/storage"
	"library-doctor/feature/collection/codec"

	"github.com/minio/minio-go/v7"
)

// ObjectStatus describes one published object.
type ObjectStatus struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// PublicationReport describes the latest published export and report.
type PublicationReport struct {
	Export ObjectStatus `json:"export"`
	Report ObjectStatus `json:"report"`
}

// OK reports whether both objects are present and valid.
func (r *PublicationReport) OK() bool {
	return r.Export.Valid && r.Report.Valid
}

// CheckPublished downloads the latest export and report and verifies that they decode.
func CheckPublished(ctx context.Context, client storage.Client, bucket, prefix string) (*PublicationReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &PublicationReport{
		Export: checkObject(ctx, client, bucket, ObjectKey(prefix, LatestExport), func(r io.Reader) error {
			_, err := codec.Decode(r)
			return err
		}),
		Report: checkObject(ctx, client, bucket, ObjectKey(prefix, LatestReport), func(r io.Reader) error {
			var rep reconcile.Report
			return json.NewDecoder(r).Decode(&rep)
		}),
	}
	return report, nil
}

func checkObject(ctx context.Context, client storage.Client, bucket, key string, validate func(io.Reader) error) ObjectStatus {
	status := ObjectStatus{Key: key}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return withObjectError(status, err)
	}
	defer obj.Close()

	if err := validate(obj); err != nil {
		return withObjectError(status, err)
	}

	status.Present = true
	status.Valid = true
	return status
}

// withObjectError marks the object present unless the store reports it missing.
func withObjectError(status ObjectStatus, err error) ObjectStatus {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		status.Error = "object not found"
		return status
	}
	status.Present = true
	status.Error = err.Error()
	return status
}
