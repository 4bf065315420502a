package scanner_test

import (
	"path/filepath"
	"testing"

	"library-doctor/core/scanner"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, []byte("x"), 0o644))
	}
}

func TestNewExtensions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		exts := scanner.NewExtensions()
		assert.Equal(t, []string{"aac", "flac", "mp3", "wav"}, exts.Sorted())
	})

	t.Run("Normalizes", func(t *testing.T) {
		exts := scanner.NewExtensions(".MP3", " flac ", "")
		assert.Equal(t, []string{"flac", "mp3"}, exts.Sorted())
	})
}

func TestExtensions_Match(t *testing.T) {
	exts := scanner.NewExtensions()

	tests := []struct {
		name string
		want bool
	}{
		{"track.mp3", true},
		{"track.MP3", true},
		{"track.Flac", true},
		{"track.wav", true},
		{"track.aac", true},
		{"track.ogg", false},
		{"track.m4a", false},
		{"track", false},
		{".mp3", false},
		{"archive.mp3.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exts.Match(tt.name))
		})
	}
}

func TestList(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/music/b.mp3",
		"/music/a.FLAC",
		"/music/notes.txt",
		"/music/track.ogg",
		"/music/sub/nested.mp3",
	)

	files := scanner.List(fs, "/music", scanner.NewExtensions())

	assert.Equal(t, []string{
		filepath.Join("/music", "a.FLAC"),
		filepath.Join("/music", "b.mp3"),
	}, files)
}

func TestList_MissingDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()

	files := scanner.List(fs, "/nowhere", scanner.NewExtensions())
	assert.NotNil(t, files)
	assert.Empty(t, files)

	_, err := scanner.Scan(fs, "/nowhere", scanner.NewExtensions())
	assert.Error(t, err)
}

func TestList_CustomExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/music/a.mp3", "/music/b.ogg")

	files := scanner.List(fs, "/music", scanner.NewExtensions("ogg"))
	assert.Equal(t, []string{filepath.Join("/music", "b.ogg")}, files)
}
