package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExtensions lists the audio formats the library manager understands.
var DefaultExtensions = []string{"mp3", "aac", "wav", "flac"}

// Extensions is a case-insensitive set of file extensions without the leading dot.
type Extensions map[string]struct{}

// NewExtensions builds an extension set. With no arguments DefaultExtensions is used.
func NewExtensions(exts ...string) Extensions {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(Extensions, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

// Match reports whether the file name carries one of the allowed extensions.
// Dot-files such as ".mp3" have no extension and never match.
func (e Extensions) Match(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return false
	}
	_, ok := e[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// Sorted returns the extensions in lexical order.
func (e Extensions) Sorted() []string {
	out := make([]string, 0, len(e))
	for ext := range e {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Scan returns the absolute paths of supported files directly inside dir.
func Scan(fs afero.Fs, dir string, exts Extensions) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if !exts.Match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(root, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// List is Scan with errors degraded to an empty listing.
func List(fs afero.Fs, dir string, exts Extensions) []string {
	files, err := Scan(fs, dir, exts)
	if err != nil {
		return []string{}
	}
	return files
}
