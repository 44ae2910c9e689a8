// Package tags carries the metadata a scan entry point reports:
// a duration plus named text values.
package tags

import "time"

// Type names the tag values the scanner understands.
type Type uint8

const (
	TypeTitle Type = iota
	TypeArtist
	TypeAlbum
	TypeAlbumArtist
	TypeTrack
	TypeDisc
	TypeGenre
	TypeDate
	TypeComposer
	TypeComment
)

func (t Type) String() string {
	switch t {
	case TypeTitle:
		return "Title"
	case TypeArtist:
		return "Artist"
	case TypeAlbum:
		return "Album"
	case TypeAlbumArtist:
		return "AlbumArtist"
	case TypeTrack:
		return "Track"
	case TypeDisc:
		return "Disc"
	case TypeGenre:
		return "Genre"
	case TypeDate:
		return "Date"
	case TypeComposer:
		return "Composer"
	case TypeComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Handler receives metadata as a scanner discovers it. Scan entry
// points call it; they never retain it past the scan.
type Handler interface {
	// OnDuration reports the playing time, when knowable without
	// decoding the whole resource.
	OnDuration(d time.Duration)

	// OnTag reports one known tag value.
	OnTag(t Type, value string)

	// OnPair reports a name/value the scanner found but has no Type
	// for.
	OnPair(name, value string)
}

// Item is one collected tag value.
type Item struct {
	Type  Type
	Value string
}

// Pair is one collected name/value without a known Type.
type Pair struct {
	Name  string
	Value string
}

// Tag is the result of one scan. A negative Duration means unknown.
type Tag struct {
	Duration time.Duration
	Items    []Item
	Pairs    []Pair
}

// HasDuration reports whether the scan learned a playing time.
func (t Tag) HasDuration() bool {
	return t.Duration >= 0
}

// Builder is a Handler collecting everything into a Tag value.
type Builder struct {
	tag Tag
}

var _ Handler = (*Builder)(nil)

func NewBuilder() *Builder {
	return &Builder{tag: Tag{Duration: -1}}
}

func (b *Builder) OnDuration(d time.Duration) {
	b.tag.Duration = d
}

func (b *Builder) OnTag(t Type, value string) {
	if value == "" {
		return
	}
	b.tag.Items = append(b.tag.Items, Item{Type: t, Value: value})
}

func (b *Builder) OnPair(name, value string) {
	b.tag.Pairs = append(b.tag.Pairs, Pair{Name: name, Value: value})
}

// Commit returns the collected Tag and resets the builder for reuse.
func (b *Builder) Commit() Tag {
	tag := b.tag
	b.tag = Tag{Duration: -1}
	return tag
}
