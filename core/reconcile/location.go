package reconcile

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveLocation converts a file-scheme location URI into a filesystem path.
// It returns false for other schemes, remote hosts and malformed URIs.
func ResolveLocation(location string) (string, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", false
	}
	if u.Opaque != "" || !strings.HasPrefix(u.Path, "/") {
		return "", false
	}

	p := u.Path
	if runtime.GOOS == "windows" {
		p = trimDriveSlash(p)
	}
	return filepath.Clean(filepath.FromSlash(p)), true
}

// SuggestLocation renders a filesystem path as a file://localhost location URI.
func SuggestLocation(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Host: "localhost", Path: p}
	return u.String()
}

// trimDriveSlash turns "/C:/Music" into "C:/Music".
func trimDriveSlash(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		return p[1:]
	}
	return p
}
