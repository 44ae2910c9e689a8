package upnp

import (
	"testing"
	"time"

	"github.com/aulos-player/aulos/pkg/tags"
)

const sampleDIDL = `<?xml version="1.0"?>
<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"
           xmlns:dc="http://purl.org/dc/elements/1.1/"
           xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">
  <container id="64" parentID="0" restricted="1">
    <dc:title>Albums/Live</dc:title>
    <upnp:class>object.container.storageFolder</upnp:class>
  </container>
  <item id="64$1$0" parentID="64" restricted="1">
    <dc:title>First Song</dc:title>
    <upnp:class>object.item.audioItem.musicTrack</upnp:class>
    <upnp:artist>Some Band</upnp:artist>
    <upnp:album>Some Album</upnp:album>
    <upnp:genre>Jazz</upnp:genre>
    <upnp:originalTrackNumber>7</upnp:originalTrackNumber>
    <dc:date>2004-05-01</dc:date>
    <res duration="0:03:22.500" protocolInfo="http-get:*:audio/flac:*">http://server/media/1.flac</res>
  </item>
  <item id="" parentID="64">
    <dc:title>Broken</dc:title>
  </item>
</DIDL-Lite>`

func TestParseDIDL(t *testing.T) {
	objects, err := ParseDIDL([]byte(sampleDIDL))
	if err != nil {
		t.Fatalf("ParseDIDL: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2 (entry without ID dropped)", len(objects))
	}

	dir := objects[0]
	if dir.Type != TypeContainer || dir.ID != "64" || dir.ParentID != "0" {
		t.Fatalf("container = %+v", dir)
	}
	if dir.Title != "Albums/Live" {
		t.Fatalf("title = %q", dir.Title)
	}
	if dir.Name != "Albums_Live" {
		t.Fatalf("name = %q, slash not sanitized", dir.Name)
	}

	item := objects[1]
	if item.Type != TypeItem || item.ItemClass != ClassMusic {
		t.Fatalf("item = %+v", item)
	}
	if item.URL != "http://server/media/1.flac" {
		t.Fatalf("url = %q", item.URL)
	}
	want := 3*time.Minute + 22*time.Second + 500*time.Millisecond
	if item.Tag.Duration != want {
		t.Fatalf("duration = %v, want %v", item.Tag.Duration, want)
	}

	values := map[tags.Type]string{}
	for _, it := range item.Tag.Items {
		values[it.Type] = it.Value
	}
	if values[tags.TypeTitle] != "First Song" ||
		values[tags.TypeArtist] != "Some Band" ||
		values[tags.TypeAlbum] != "Some Album" ||
		values[tags.TypeGenre] != "Jazz" ||
		values[tags.TypeTrack] != "7" ||
		values[tags.TypeDate] != "2004-05-01" {
		t.Fatalf("tag values = %v", values)
	}
}

func TestParseDIDLRejectsGarbage(t *testing.T) {
	if _, err := ParseDIDL([]byte("not xml at all <")); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"0:03:22.500", 3*time.Minute + 22*time.Second + 500*time.Millisecond, true},
		{"1:00:00", time.Hour, true},
		{"0:00:01", time.Second, true},
		{"03:22", 0, false},
		{"0:61:00", 0, false},
		{"0:00:60", 0, false},
		{"-1:00:00", 0, false},
		{"x:00:00", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseDuration(%q) err = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	if ParseObjectType("object.container.person.musicArtist") != TypeContainer {
		t.Fatal("container subclass not recognized")
	}
	if ParseObjectType("object.item.audioItem.musicTrack") != TypeItem {
		t.Fatal("item subclass not recognized")
	}
	if ParseObjectType("vendor.weird") != TypeUnknown {
		t.Fatal("foreign class not mapped to unknown")
	}

	if ParseItemClass("object.item.audioItem.musicTrack") != ClassMusic {
		t.Fatal("music track not recognized")
	}
	if ParseItemClass("object.item.playlistItem") != ClassPlaylist {
		t.Fatal("playlist item not recognized")
	}
	if ParseItemClass("object.item.videoItem") != ClassUnknown {
		t.Fatal("video item misclassified")
	}
}

func TestClear(t *testing.T) {
	o := DirObject{ID: "1", Title: "x", Type: TypeItem, ItemClass: ClassMusic}
	o.Tag.Duration = time.Minute

	o.Clear()
	if o.Valid() {
		t.Fatal("cleared object still valid")
	}
	if o.Type != TypeUnknown || o.ItemClass != ClassUnknown {
		t.Fatal("classification survived Clear")
	}
	if o.Tag.HasDuration() {
		t.Fatal("duration survived Clear")
	}
}
