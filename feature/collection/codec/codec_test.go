package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"library-doctor/feature/collection/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>

<DJ_PLAYLISTS Version="1.0.0">
	<PRODUCT Name="rekordbox" Version="6.6.4" Company="AlphaTheta"/>
	<COLLECTION Entries="3">
		<TRACK TrackID="101" Name="Inside My Love" Artist="Louie Vega" Composer="" Album="Defected In The House" Grouping="" Genre="House" Kind="MP3 File" Size="9876543" TotalTime="412" DiscNumber="3" TrackNumber="9" Year="2008" AverageBpm="122.00" DateAdded="2023-01-05" BitRate="320" SampleRate="44100" Comments="" PlayCount="0" Rating="0" Location="file://localhost/Users/dj/Music/3-09%20Inside%20My%20Love.mp3" Remixer="" Tonality="8A" Label="" Mix="">
			<TEMPO Inizio="0.025" Bpm="122.00" Metro="4/4" Battito="1"/>
			<TEMPO Inizio="120.500" Bpm="122.50" Metro="4/4" Battito="3"/>
			<POSITION_MARK Name="" Type="0" Start="0.025" Num="-1"/>
			<POSITION_MARK Name="Drop" Type="4" Start="64.000" End="80.000" Num="0" Red="40" Green="226" Blue="20"/>
		</TRACK>
		<TRACK TrackID="102" Name="Warriors &amp; Co" Artist="Stanton" Composer="" Album="" Grouping="" Genre="" Kind="FLAC File" Size="1" TotalTime="300" DiscNumber="0" TrackNumber="1" Year="" AverageBpm="174.00" DateAdded="2023-01-06" BitRate="1411" SampleRate="44100" Comments="line one&#xA;line two" PlayCount="2" Rating="0" Location="file://localhost/Users/dj/Music/01%20Warriors.flac" Remixer="Basskleph" Tonality="" Label="" Mix=""/>
		<TRACK TrackID="103" Name="Sparse" Location="file://localhost/Users/dj/Music/sparse.wav"/>
	</COLLECTION>
	<PLAYLISTS>
		<NODE Type="0" Name="ROOT" Count="2">
			<NODE Name="House" Type="0" Count="2">
				<NODE Name="Deep" Type="1" KeyType="0" Entries="2">
					<TRACK Key="101"/>
					<TRACK Key="102"/>
				</NODE>
				<NODE Name="Empty" Type="1" KeyType="0" Entries="0"/>
			</NODE>
			<NODE Name="Unsorted" Type="0"/>
		</NODE>
	</PLAYLISTS>
</DJ_PLAYLISTS>
`

const minimalXML = `<DJ_PLAYLISTS Version="1"><COLLECTION/><PLAYLISTS><NODE Name="ROOT" Type="0"/></PLAYLISTS></DJ_PLAYLISTS>`

func strPtr(s string) *string { return &s }

func mustDecode(t *testing.T, s string) *models.Document {
	t.Helper()
	doc, err := Unmarshal([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestDecode_Sample(t *testing.T) {
	doc := mustDecode(t, sampleXML)

	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, models.Product{Name: "rekordbox", Version: "6.6.4", Company: "AlphaTheta"}, doc.Product)
	require.NotNil(t, doc.Collection.Entries)
	assert.Equal(t, "3", *doc.Collection.Entries)
	require.Len(t, doc.Collection.Tracks, 3)

	first := doc.Collection.Tracks[0]
	assert.Equal(t, "101", first.TrackID)
	assert.Equal(t, "122.00", first.AverageBpm)
	assert.Equal(t, "file://localhost/Users/dj/Music/3-09%20Inside%20My%20Love.mp3", first.Location)
	require.Len(t, first.Tempos, 2)
	assert.Equal(t, "120.500", first.Tempos[1].Inizio)
	require.Len(t, first.PositionMarks, 2)
	assert.Nil(t, first.PositionMarks[0].End)
	assert.Nil(t, first.PositionMarks[0].Red)
	require.NotNil(t, first.PositionMarks[1].End)
	assert.Equal(t, "80.000", *first.PositionMarks[1].End)

	second := doc.Collection.Tracks[1]
	assert.Equal(t, "Warriors & Co", second.Name)
	assert.Equal(t, "line one\nline two", second.Comments)
	assert.Nil(t, second.Tempos)
	assert.Nil(t, second.PositionMarks)

	assert.Equal(t, "", doc.Collection.Tracks[2].Artist)
}

func TestDecode_Tree(t *testing.T) {
	doc := mustDecode(t, sampleXML)

	root := doc.Root
	assert.Equal(t, "ROOT", root.Name)
	require.NotNil(t, root.Count)
	assert.Equal(t, "2", *root.Count)
	assert.Nil(t, root.KeyType)
	require.Len(t, root.Children, 2)

	house, ok := root.Children[0].(*models.Folder)
	require.True(t, ok)
	require.Len(t, house.Children, 2)

	deep, ok := house.Children[0].(*models.Playlist)
	require.True(t, ok)
	assert.Equal(t, []models.NodeTrackRef{{Key: "101"}, {Key: "102"}}, deep.Tracks)
	assert.Equal(t, "0", *deep.KeyType)
	assert.Equal(t, "2", *deep.Entries)

	empty, ok := house.Children[1].(*models.Playlist)
	require.True(t, ok)
	assert.Nil(t, empty.Tracks)

	unsorted, ok := root.Children[1].(*models.Folder)
	require.True(t, ok)
	assert.Nil(t, unsorted.Children)
	assert.Nil(t, unsorted.Count)
}

func TestRoundTrip(t *testing.T) {
	doc := mustDecode(t, sampleXML)

	out, err := Marshal(doc)
	require.NoError(t, err)

	again, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	// Encoding is stable once normalized.
	out2, err := Marshal(again)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}

func TestEncode_Layout(t *testing.T) {
	count := "1"
	keyType := "0"
	entries := "1"
	doc := &models.Document{
		Version:    "1.0.0",
		Product:    models.Product{Name: "rekordbox", Version: "6.6.4", Company: "AlphaTheta"},
		Collection: models.Collection{Entries: strPtr("0")},
		Root: &models.Folder{
			Name:  "ROOT",
			Attrs: models.Attrs{Count: &count},
			Children: []models.Node{
				&models.Playlist{
					Name:   "P",
					Attrs:  models.Attrs{KeyType: &keyType, Entries: &entries},
					Tracks: []models.NodeTrackRef{{Key: "1"}},
				},
				&models.Folder{Name: "F"},
			},
		},
	}

	out, err := Marshal(doc)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<DJ_PLAYLISTS Version="1.0.0">
  <PRODUCT Name="rekordbox" Version="6.6.4" Company="AlphaTheta"></PRODUCT>
  <COLLECTION Entries="0"></COLLECTION>
  <PLAYLISTS>
    <NODE Name="ROOT" Type="0" Count="1">
      <NODE Name="P" Type="1" KeyType="0" Entries="1">
        <TRACK Key="1"></TRACK>
      </NODE>
      <NODE Name="F" Type="0"></NODE>
    </NODE>
  </PLAYLISTS>
</DJ_PLAYLISTS>
`
	assert.Equal(t, want, string(out))
}

func TestEncode_TrackAttributeOrder(t *testing.T) {
	red := "255"
	doc := &models.Document{
		Collection: models.Collection{
			Entries: strPtr("1"),
			Tracks: []models.Track{{
				TrackID:  "1",
				Name:     "A",
				Location: "file://localhost/a.mp3",
				Tempos:   []models.Tempo{{Inizio: "0.025", Bpm: "128.00", Metro: "4/4", Battito: "1"}},
				PositionMarks: []models.PositionMark{
					{Name: "", Type: "0", Start: "1.000", Num: "1", Red: &red},
				},
			}},
		},
		Root: &models.Folder{Name: "ROOT"},
	}

	out, err := Marshal(doc)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, `    <TRACK TrackID="1" Name="A" Artist="" Composer="" Album="" Grouping="" Genre="" Kind="" Size="" TotalTime="" DiscNumber="" TrackNumber="" Year="" AverageBpm="" DateAdded="" BitRate="" SampleRate="" Comments="" PlayCount="" Rating="" Location="file://localhost/a.mp3" Remixer="" Tonality="" Label="" Mix="">`)
	assert.Contains(t, s, `      <TEMPO Inizio="0.025" Bpm="128.00" Metro="4/4" Battito="1"></TEMPO>`)
	assert.Contains(t, s, `      <POSITION_MARK Name="" Type="0" Start="1.000" Num="1" Red="255"></POSITION_MARK>`)
	assert.NotContains(t, s, "Green=")
	assert.NotContains(t, s, "End=")
}

func TestEncode_PresentButEmptyAttribute(t *testing.T) {
	empty := ""
	doc := &models.Document{Root: &models.Folder{Name: "ROOT", Attrs: models.Attrs{Count: &empty}}}

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<NODE Name="ROOT" Type="0" Count=""></NODE>`)

	again, err := Unmarshal(out)
	require.NoError(t, err)
	require.NotNil(t, again.Root.Count)
	assert.Equal(t, "", *again.Root.Count)
}

func TestEncode_NoRoot(t *testing.T) {
	_, err := Marshal(&models.Document{})
	assert.Error(t, err)
}

func TestDecode_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"Empty", "", "malformed XML"},
		{"NotXML", "this is not xml", "malformed XML"},
		{"Truncated", `<DJ_PLAYLISTS Version="1"><COLLECTION>`, "malformed XML"},
		{"WrongRoot", `<PLAYLIST/>`, "unexpected document structure"},
		{"MissingCollection", `<DJ_PLAYLISTS><PLAYLISTS><NODE Name="ROOT" Type="0"/></PLAYLISTS></DJ_PLAYLISTS>`, "missing COLLECTION"},
		{"MissingPlaylists", `<DJ_PLAYLISTS><COLLECTION Entries="0"/></DJ_PLAYLISTS>`, "missing PLAYLISTS"},
		{"NoRootNode", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS/></DJ_PLAYLISTS>`, "exactly one root NODE"},
		{"TwoRootNodes", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS><NODE Name="A" Type="0"/><NODE Name="B" Type="0"/></PLAYLISTS></DJ_PLAYLISTS>`, "exactly one root NODE"},
		{"PlaylistRoot", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS><NODE Name="ROOT" Type="1"/></PLAYLISTS></DJ_PLAYLISTS>`, "must be a folder"},
		{"UnknownType", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS><NODE Name="ROOT" Type="0"><NODE Name="X" Type="7"/></NODE></PLAYLISTS></DJ_PLAYLISTS>`, `"ROOT/X" has unknown Type "7"`},
		{"FolderWithTracks", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS><NODE Name="ROOT" Type="0"><TRACK Key="1"/></NODE></PLAYLISTS></DJ_PLAYLISTS>`, "holds track references"},
		{"TrailingElement", minimalXML + `<BOGUS><unclosed`, "content after root element"},
		{"SecondRoot", minimalXML + `<DJ_PLAYLISTS/>`, "content after root element"},
		{"TrailingText", minimalXML + "\nleftover", "content after root element"},
		{"TrailingGarbage", minimalXML + "<", "malformed XML"},
		{"PlaylistWithNodes", `<DJ_PLAYLISTS><COLLECTION/><PLAYLISTS><NODE Name="ROOT" Type="0"><NODE Name="P" Type="1"><NODE Name="X" Type="0"/></NODE></NODE></PLAYLISTS></DJ_PLAYLISTS>`, "holds child nodes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Unmarshal([]byte(tt.input))
			assert.Nil(t, doc)
			require.Error(t, err)

			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %T", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecode_TrailingMiscAllowed(t *testing.T) {
	doc := mustDecode(t, minimalXML+"\n<!-- exported -->\n<?app done?>\n\n")
	assert.Equal(t, "ROOT", doc.Root.Name)
}

func TestDecode_AbsentCollectionEntries(t *testing.T) {
	doc := mustDecode(t, minimalXML)
	assert.Nil(t, doc.Collection.Entries)

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<COLLECTION></COLLECTION>")
	assert.NotContains(t, string(data), "Entries=")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestDecode_ReaderFailure(t *testing.T) {
	_, err := Decode(failingReader{})
	require.Error(t, err)

	var formatErr *FormatError
	assert.False(t, errors.As(err, &formatErr))
	assert.Contains(t, err.Error(), "disk on fire")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncode_WriterFailure(t *testing.T) {
	doc := mustDecode(t, sampleXML)
	err := Encode(failingWriter{}, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDecode_MissingProductIsZero(t *testing.T) {
	doc := mustDecode(t, `<DJ_PLAYLISTS Version="1"><COLLECTION Entries="0"/><PLAYLISTS><NODE Name="ROOT" Type="0"/></PLAYLISTS></DJ_PLAYLISTS>`)
	assert.Equal(t, models.Product{}, doc.Product)
	assert.Nil(t, doc.Collection.Tracks)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	assert.True(t, strings.HasPrefix(buf.String(), Header))
}
