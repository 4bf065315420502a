package models

// Document is the root of a DJ_PLAYLISTS library export.
// Every attribute is kept as the raw string found in the source so that
// re-encoding reproduces the original formatting.
type Document struct {
	// Version is the DJ_PLAYLISTS Version attribute.
	Version string
	// Product describes the application that produced the export.
	Product Product
	// Collection holds the declared tracks.
	Collection Collection
	// Root is the top of the playlist tree. It is always a folder.
	Root *Folder
}

// Product is the PRODUCT element. Informational only.
type Product struct {
	Name    string `xml:"Name,attr"`
	Version string `xml:"Version,attr"`
	Company string `xml:"Company,attr"`
}

// Collection is the COLLECTION element.
type Collection struct {
	// Entries is the declared track count, stored as read and never recomputed.
	// Nil when the attribute is absent.
	Entries *string
	// Tracks are kept in document order.
	Tracks []Track
}

// Track is one audio item of the collection. Attribute order is the wire order.
type Track struct {
	TrackID     string `xml:"TrackID,attr"`
	Name        string `xml:"Name,attr"`
	Artist      string `xml:"Artist,attr"`
	Composer    string `xml:"Composer,attr"`
	Album       string `xml:"Album,attr"`
	Grouping    string `xml:"Grouping,attr"`
	Genre       string `xml:"Genre,attr"`
	Kind        string `xml:"Kind,attr"`
	Size        string `xml:"Size,attr"`
	TotalTime   string `xml:"TotalTime,attr"`
	DiscNumber  string `xml:"DiscNumber,attr"`
	TrackNumber string `xml:"TrackNumber,attr"`
	Year        string `xml:"Year,attr"`
	AverageBpm  string `xml:"AverageBpm,attr"`
	DateAdded   string `xml:"DateAdded,attr"`
	BitRate     string `xml:"BitRate,attr"`
	SampleRate  string `xml:"SampleRate,attr"`
	Comments    string `xml:"Comments,attr"`
	PlayCount   string `xml:"PlayCount,attr"`
	Rating      string `xml:"Rating,attr"`
	// Location is a file-scheme URI and the join key to the filesystem.
	Location string `xml:"Location,attr"`
	Remixer  string `xml:"Remixer,attr"`
	Tonality string `xml:"Tonality,attr"`
	Label    string `xml:"Label,attr"`
	Mix      string `xml:"Mix,attr"`

	Tempos        []Tempo        `xml:"TEMPO"`
	PositionMarks []PositionMark `xml:"POSITION_MARK"`
}

// Tempo is a beat grid marker.
type Tempo struct {
	Inizio  string `xml:"Inizio,attr"`
	Bpm     string `xml:"Bpm,attr"`
	Metro   string `xml:"Metro,attr"`
	Battito string `xml:"Battito,attr"`
}

// PositionMark is a cue point or loop.
// End and the colour channels only appear on loops and hot cues.
type PositionMark struct {
	Name  string  `xml:"Name,attr"`
	Type  string  `xml:"Type,attr"`
	Start string  `xml:"Start,attr"`
	End   *string `xml:"End,attr,omitempty"`
	Num   string  `xml:"Num,attr"`
	Red   *string `xml:"Red,attr,omitempty"`
	Green *string `xml:"Green,attr,omitempty"`
	Blue  *string `xml:"Blue,attr,omitempty"`
}

// Playlists returns every playlist of the tree in document order.
func (d *Document) Playlists() []*Playlist {
	if d.Root == nil {
		return nil
	}
	return Playlists(d.Root)
}
