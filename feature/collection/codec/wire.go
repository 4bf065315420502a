package codec

import (
	"encoding/xml"

	"library-doctor/feature/collection/models"
)

// Wire structs mirror the element layout. Field order is the emitted attribute
// and element order.

type xmlDocument struct {
	XMLName    xml.Name        `xml:"DJ_PLAYLISTS"`
	Version    string          `xml:"Version,attr"`
	Product    *models.Product `xml:"PRODUCT"`
	Collection *xmlCollection  `xml:"COLLECTION"`
	Playlists  *xmlPlaylists   `xml:"PLAYLISTS"`
}

type xmlCollection struct {
	Entries *string        `xml:"Entries,attr,omitempty"`
	Tracks  []models.Track `xml:"TRACK"`
}

type xmlPlaylists struct {
	Nodes []xmlNode `xml:"NODE"`
}

type xmlNode struct {
	Name    string                `xml:"Name,attr"`
	Type    string                `xml:"Type,attr"`
	Count   *string               `xml:"Count,attr,omitempty"`
	KeyType *string               `xml:"KeyType,attr,omitempty"`
	Entries *string               `xml:"Entries,attr,omitempty"`
	Tracks  []models.NodeTrackRef `xml:"TRACK"`
	Nodes   []xmlNode             `xml:"NODE"`
}
