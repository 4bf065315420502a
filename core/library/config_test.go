package library

import (
	"testing"
	"time"

	"library-doctor/core/scanner"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ExtensionSet(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"Default", "", scanner.NewExtensions().Sorted()},
		{"Custom", "mp3, .OGG ,,flac", []string{"flac", "mp3", "ogg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Extensions: tt.value}
			assert.Equal(t, tt.want, c.ExtensionSet().Sorted())
		})
	}
}

func TestConfig_CacheTTL(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{CacheTTLSeconds: 30}.CacheTTL())
	assert.Equal(t, time.Duration(0), Config{}.CacheTTL())
	assert.Equal(t, time.Duration(0), Config{CacheTTLSeconds: -5}.CacheTTL())
}
