package collection

import (
	"fmt"

	"library-doctor/feature/collection/codec"
	"library-doctor/feature/collection/models"

	"github.com/spf13/afero"
)

// LoadDocument opens and decodes the document at path.
func LoadDocument(fs afero.Fs, path string) (*models.Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load library document %s: %w", path, err)
	}
	return doc, nil
}

// SaveDocument encodes doc and writes it to path.
// Encoding happens in memory first so a failure leaves no partial file.
func SaveDocument(fs afero.Fs, path string, doc *models.Document) error {
	data, err := codec.Marshal(doc)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library document %s: %w", path, err)
	}
	return nil
}
