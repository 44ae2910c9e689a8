package upnp

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aulos-player/aulos/pkg/tags"
)

// Element names are matched by local name only: servers disagree
// about namespace prefixes more than about the names themselves.
type didlLite struct {
	XMLName    xml.Name    `xml:"DIDL-Lite"`
	Containers []didlEntry `xml:"container"`
	Items      []didlEntry `xml:"item"`
}

type didlEntry struct {
	ID       string `xml:"id,attr"`
	ParentID string `xml:"parentID,attr"`

	Title    string    `xml:"title"`
	Class    string    `xml:"class"`
	Artist   string    `xml:"artist"`
	Album    string    `xml:"album"`
	Genre    string    `xml:"genre"`
	TrackNum string    `xml:"originalTrackNumber"`
	Date     string    `xml:"date"`
	Res      []didlRes `xml:"res"`
}

type didlRes struct {
	Duration string `xml:"duration,attr"`
	URL      string `xml:",chardata"`
}

// ParseDuration reads the "res@duration" form "H:MM:SS", optionally
// with a fraction, e.g. "0:03:22.500".
func ParseDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}
	secs, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs*float64(time.Second)), nil
}

// ParseDIDL decodes a DIDL-Lite document into directory entries,
// containers first. Entries without an object ID are dropped.
func ParseDIDL(data []byte) ([]DirObject, error) {
	var doc didlLite
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse DIDL-Lite document: %w", err)
	}

	objects := make([]DirObject, 0, len(doc.Containers)+len(doc.Items))
	for i := range doc.Containers {
		if o, ok := convertEntry(TypeContainer, &doc.Containers[i]); ok {
			objects = append(objects, o)
		}
	}
	for i := range doc.Items {
		if o, ok := convertEntry(TypeItem, &doc.Items[i]); ok {
			objects = append(objects, o)
		}
	}
	return objects, nil
}

func convertEntry(typ ObjectType, e *didlEntry) (DirObject, bool) {
	o := DirObject{
		ID:       e.ID,
		ParentID: e.ParentID,
		Title:    e.Title,
		Name:     pathSegment(e.Title),
		Type:     typ,
	}
	if !o.Valid() {
		return o, false
	}
	if typ == TypeItem {
		o.ItemClass = ParseItemClass(e.Class)
	}

	b := tags.NewBuilder()
	b.OnTag(tags.TypeTitle, e.Title)
	b.OnTag(tags.TypeArtist, e.Artist)
	b.OnTag(tags.TypeAlbum, e.Album)
	b.OnTag(tags.TypeGenre, e.Genre)
	b.OnTag(tags.TypeTrack, e.TrackNum)
	b.OnTag(tags.TypeDate, e.Date)

	if len(e.Res) > 0 {
		o.URL = strings.TrimSpace(e.Res[0].URL)
		if d, err := ParseDuration(e.Res[0].Duration); err == nil {
			b.OnDuration(d)
		}
	}

	o.Tag = b.Commit()
	return o, true
}
