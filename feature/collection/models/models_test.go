package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func sampleTree() *Folder {
	return &Folder{
		Name:  "ROOT",
		Attrs: Attrs{Count: str("2")},
		Children: []Node{
			&Folder{
				Name:  "House",
				Attrs: Attrs{Count: str("1")},
				Children: []Node{
					&Playlist{Name: "Deep", Tracks: []NodeTrackRef{{Key: "1"}}},
				},
			},
			&Playlist{Name: "Warmup", Attrs: Attrs{KeyType: str("0"), Entries: str("0")}},
		},
	}
}

func TestWalk_Order(t *testing.T) {
	var visited []string
	var paths [][]string
	Walk(sampleTree(), func(path []string, n Node) bool {
		visited = append(visited, n.NodeName()+":"+n.NodeType())
		paths = append(paths, path)
		return true
	})

	assert.Equal(t, []string{"ROOT:0", "House:0", "Deep:1", "Warmup:1"}, visited)
	assert.Equal(t, []string{"ROOT", "House", "Deep"}, paths[2])
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	Walk(sampleTree(), func(_ []string, n Node) bool {
		visited = append(visited, n.NodeName())
		return n.NodeName() != "House"
	})

	assert.Equal(t, []string{"ROOT", "House", "Warmup"}, visited)
}

func TestWalk_NilFolder(t *testing.T) {
	var root *Folder
	called := false
	Walk(root, func([]string, Node) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestDocument_Playlists(t *testing.T) {
	doc := &Document{Root: sampleTree()}
	playlists := doc.Playlists()

	assert.Len(t, playlists, 2)
	assert.Equal(t, "Deep", playlists[0].Name)
	assert.Equal(t, "Warmup", playlists[1].Name)

	assert.Nil(t, (&Document{}).Playlists())
}

func TestNodeTrackRef_ID(t *testing.T) {
	id, err := NodeTrackRef{Key: "42"}.ID()
	assert.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = NodeTrackRef{Key: "file://localhost/a.mp3"}.ID()
	assert.Error(t, err)
}

func TestNodeAttrs(t *testing.T) {
	p := &Playlist{Name: "p", Attrs: Attrs{KeyType: str("1")}}
	assert.Equal(t, "1", *p.NodeAttrs().KeyType)
	assert.Nil(t, p.NodeAttrs().Entries)
}
