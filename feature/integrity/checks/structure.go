package checks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"library-doctor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publish layout folders.
const (
	ExportsFolder = "exports"
	ReportsFolder = "reports"
)

// Well-known object names inside the publish layout.
const (
	LatestExport = ExportsFolder + "/latest.xml"
	LatestReport = ReportsFolder + "/latest.json"
)

// RequiredFolders lists the folders that must exist under the publish prefix.
var RequiredFolders = []string{ExportsFolder, ReportsFolder}

// ObjectKey joins the publish prefix and a layout-relative key.
func ObjectKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// CheckStructure returns the required folders missing under prefix.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, folder := range RequiredFolders {
		if !folderExists(ctx, client, bucket, ObjectKey(prefix, folder)) {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// folderExists reports whether any object lives under folder.
// The listing is cancelled on return so the lister never blocks on an unread page.
func folderExists(ctx context.Context, client storage.Client, bucket, folder string) bool {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    folder + "/",
		Recursive: false,
		MaxKeys:   1,
	}
	for range client.ListObjects(listCtx, bucket, opts) {
		return true
	}
	return false
}

// FixStructure creates the missing folders as empty marker objects.
func FixStructure(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		folderPath := ObjectKey(prefix, folder) + "/"

		_, err := client.PutObject(ctx, bucket, folderPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folderPath))
	}
	return nil
}
