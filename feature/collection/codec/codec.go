package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"library-doctor/feature/collection/models"
)

// Header is the literal declaration line written before the root element.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// indent is the fixed step per nesting level.
const indent = "  "

// Unmarshal decodes a document from memory.
func Unmarshal(data []byte) (*models.Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode parses a DJ_PLAYLISTS document.
// Structural problems yield a *FormatError; reader failures are returned wrapped.
func Decode(r io.Reader) (*models.Document, error) {
	var xd xmlDocument
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&xd); err != nil {
		var unmarshalErr xml.UnmarshalError
		if errors.As(err, &unmarshalErr) {
			return nil, &FormatError{Msg: "unexpected document structure", Err: err}
		}
		return nil, readError(err)
	}
	if err := checkTrailing(dec); err != nil {
		return nil, err
	}

	if xd.Collection == nil {
		return nil, formatErrorf("missing COLLECTION element")
	}
	if xd.Playlists == nil {
		return nil, formatErrorf("missing PLAYLISTS element")
	}
	if len(xd.Playlists.Nodes) != 1 {
		return nil, formatErrorf("PLAYLISTS must hold exactly one root NODE, found %d", len(xd.Playlists.Nodes))
	}

	root, err := decodeNode(xd.Playlists.Nodes[0], nil)
	if err != nil {
		return nil, err
	}
	folder, ok := root.(*models.Folder)
	if !ok {
		return nil, formatErrorf("root NODE %q must be a folder", root.NodeName())
	}

	doc := &models.Document{
		Version: xd.Version,
		Collection: models.Collection{
			Entries: xd.Collection.Entries,
			Tracks:  xd.Collection.Tracks,
		},
		Root: folder,
	}
	if xd.Product != nil {
		doc.Product = *xd.Product
	}
	return doc, nil
}

func decodeNode(n xmlNode, parent []string) (models.Node, error) {
	path := append(append([]string(nil), parent...), n.Name)
	attrs := models.Attrs{Count: n.Count, KeyType: n.KeyType, Entries: n.Entries}

	switch n.Type {
	case models.NodeTypeFolder:
		if len(n.Tracks) > 0 {
			return nil, formatErrorf("folder %q holds track references", strings.Join(path, "/"))
		}
		f := &models.Folder{Name: n.Name, Attrs: attrs}
		if len(n.Nodes) > 0 {
			f.Children = make([]models.Node, 0, len(n.Nodes))
			for _, child := range n.Nodes {
				c, err := decodeNode(child, path)
				if err != nil {
					return nil, err
				}
				f.Children = append(f.Children, c)
			}
		}
		return f, nil

	case models.NodeTypePlaylist:
		if len(n.Nodes) > 0 {
			return nil, formatErrorf("playlist %q holds child nodes", strings.Join(path, "/"))
		}
		return &models.Playlist{Name: n.Name, Attrs: attrs, Tracks: n.Tracks}, nil

	default:
		return nil, formatErrorf("node %q has unknown Type %q", strings.Join(path, "/"), n.Type)
	}
}

// checkTrailing consumes the rest of the input. Only whitespace, comments and
// processing instructions may follow the root element.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return readError(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst:
			continue
		}
		return formatErrorf("content after root element")
	}
}

// readError maps a parser failure to a FormatError and wraps reader failures.
func readError(err error) error {
	if isSyntaxError(err) {
		return &FormatError{Msg: "malformed XML", Err: err}
	}
	return fmt.Errorf("failed to read library document: %w", err)
}

// isSyntaxError separates malformed input from reader failures.
func isSyntaxError(err error) bool {
	var syntaxErr *xml.SyntaxError
	return errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// Marshal encodes a document into memory.
func Marshal(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the declaration line followed by the document with a fixed
// two-space indentation. Optional attributes and child lists are only written
// when present.
func Encode(w io.Writer, doc *models.Document) error {
	if doc.Root == nil {
		return errors.New("document has no playlist root")
	}

	product := doc.Product
	xd := xmlDocument{
		Version: doc.Version,
		Product: &product,
		Collection: &xmlCollection{
			Entries: doc.Collection.Entries,
			Tracks:  doc.Collection.Tracks,
		},
		Playlists: &xmlPlaylists{Nodes: []xmlNode{encodeNode(doc.Root)}},
	}

	if _, err := io.WriteString(w, Header); err != nil {
		return fmt.Errorf("failed to write library document: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := enc.Encode(&xd); err != nil {
		return fmt.Errorf("failed to encode library document: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write library document: %w", err)
	}
	return nil
}

func encodeNode(n models.Node) xmlNode {
	attrs := n.NodeAttrs()
	out := xmlNode{
		Name:    n.NodeName(),
		Type:    n.NodeType(),
		Count:   attrs.Count,
		KeyType: attrs.KeyType,
		Entries: attrs.Entries,
	}

	switch v := n.(type) {
	case *models.Folder:
		if len(v.Children) > 0 {
			out.Nodes = make([]xmlNode, 0, len(v.Children))
			for _, child := range v.Children {
				out.Nodes = append(out.Nodes, encodeNode(child))
			}
		}
	case *models.Playlist:
		out.Tracks = v.Tracks
	}
	return out
}
