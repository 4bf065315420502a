package library

import (
	"strings"
	"time"

	"library-doctor/core/scanner"
)

// Config holds configuration for the library being checked.
type Config struct {
	// Document is the path of the DJ_PLAYLISTS export.
	Document string `mapstructure:"document" default:"rekordbox.xml"`
	// MusicDir is the directory scanned for audio files.
	MusicDir string `mapstructure:"music_dir" default:"."`
	// Extensions is the comma separated audio file allow-list.
	Extensions string `mapstructure:"extensions" default:"mp3,aac,wav,flac"`
	// CacheTTLSeconds is how long a decoded document is reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// PublishPrefix is the object key prefix used when publishing exports and reports.
	PublishPrefix string `mapstructure:"publish_prefix" default:""`
	// PublishRetain is the number of timestamped reports kept in the bucket. Zero keeps all.
	PublishRetain int `mapstructure:"publish_retain" default:"10"`
}

// ExtensionSet parses Extensions into a scanner allow-list.
// An empty value yields the default list.
func (c Config) ExtensionSet() scanner.Extensions {
	var exts []string
	for _, e := range strings.Split(c.Extensions, ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, e)
		}
	}
	return scanner.NewExtensions(exts...)
}

// CacheTTL returns the document cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
