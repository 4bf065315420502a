package models

import "strconv"

// Node type discriminator values of the NODE Type attribute.
const (
	NodeTypeFolder   = "0"
	NodeTypePlaylist = "1"
)

// Node is one element of the playlist tree: either a *Folder or a *Playlist.
type Node interface {
	// NodeName returns the Name attribute.
	NodeName() string
	// NodeType returns the wire discriminator.
	NodeType() string
	// NodeAttrs returns the optional attributes.
	NodeAttrs() Attrs

	node()
}

// Attrs holds the optional NODE attributes. A nil pointer means the attribute
// was absent and must stay absent on write.
type Attrs struct {
	Count   *string
	KeyType *string
	Entries *string
}

// Folder groups child nodes.
type Folder struct {
	Name string
	Attrs
	// Children is nil when the source had no child NODE elements.
	Children []Node
}

// Playlist references tracks of the collection.
type Playlist struct {
	Name string
	Attrs
	// Tracks is nil when the source had no TRACK elements.
	Tracks []NodeTrackRef
}

func (f *Folder) NodeName() string { return f.Name }
func (f *Folder) NodeType() string { return NodeTypeFolder }
func (f *Folder) NodeAttrs() Attrs { return f.Attrs }
func (f *Folder) node()            {}

func (p *Playlist) NodeName() string { return p.Name }
func (p *Playlist) NodeType() string { return NodeTypePlaylist }
func (p *Playlist) NodeAttrs() Attrs { return p.Attrs }
func (p *Playlist) node()            {}

// NodeTrackRef is a non-owning reference from a playlist to a track.
type NodeTrackRef struct {
	// Key is the raw Key attribute: a TrackID when the playlist KeyType is "0",
	// a location when it is "1".
	Key string `xml:"Key,attr"`
}

// ID parses the key as an integer track id.
func (r NodeTrackRef) ID() (int, error) {
	return strconv.Atoi(r.Key)
}

// Walk visits n and its descendants depth-first in document order.
// path holds the names from the root down to the visited node.
// Returning false from fn stops descent into that node's children.
func Walk(n Node, fn func(path []string, n Node) bool) {
	walk(nil, n, fn)
}

func walk(parent []string, n Node, fn func([]string, Node) bool) {
	switch v := n.(type) {
	case nil:
		return
	case *Folder:
		if v == nil {
			return
		}
	case *Playlist:
		if v == nil {
			return
		}
	}
	path := append(append([]string(nil), parent...), n.NodeName())
	if !fn(path, n) {
		return
	}
	if f, ok := n.(*Folder); ok {
		for _, child := range f.Children {
			walk(path, child, fn)
		}
	}
}

// Playlists returns every playlist below n in document order.
func Playlists(n Node) []*Playlist {
	var out []*Playlist
	Walk(n, func(_ []string, n Node) bool {
		if p, ok := n.(*Playlist); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}
