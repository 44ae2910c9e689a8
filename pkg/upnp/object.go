// Package upnp models UPnP media-server directory entries and decodes
// the DIDL-Lite documents content directories describe them with.
package upnp

import (
	"strings"

	"github.com/aulos-player/aulos/pkg/tags"
)

// ObjectType tells a browsable container from a playable item.
type ObjectType uint8

const (
	TypeUnknown ObjectType = iota
	TypeItem
	TypeContainer
)

// ItemClass is the finer classification of items. Containers come in
// several classes too (storageFolder, person, playlistContainer) but
// they all browse the same; music tracks and playlist items are the
// ones handled specially.
type ItemClass uint8

const (
	ClassUnknown ItemClass = iota
	ClassMusic
	ClassPlaylist
)

// DirObject is one media-server directory entry, converted from XML
// data. A dumb data holder with helpers.
type DirObject struct {
	ID       string
	ParentID string
	URL      string

	// Name is the title sanitized for use as one path segment.
	Name string

	// Title is the "dc:title" value, the directory name for a
	// container.
	Title string

	Type      ObjectType
	ItemClass ItemClass

	Tag tags.Tag
}

// Valid reports whether the entry carries the mandatory object ID.
func (o *DirObject) Valid() bool {
	return o.ID != ""
}

// Clear resets the entry for reuse.
func (o *DirObject) Clear() {
	*o = DirObject{Tag: tags.Tag{Duration: -1}}
}

// ParseObjectType maps the top level of a "upnp:class" hierarchy.
func ParseObjectType(class string) ObjectType {
	switch {
	case strings.HasPrefix(class, "object.item"):
		return TypeItem
	case strings.HasPrefix(class, "object.container"):
		return TypeContainer
	default:
		return TypeUnknown
	}
}

// ParseItemClass maps an item's full "upnp:class" value.
func ParseItemClass(class string) ItemClass {
	switch {
	case strings.HasPrefix(class, "object.item.audioItem.musicTrack"):
		return ClassMusic
	case strings.HasPrefix(class, "object.item.playlistItem"):
		return ClassPlaylist
	default:
		return ClassUnknown
	}
}

// pathSegment sanitizes a title for use as one path segment.
func pathSegment(title string) string {
	return strings.ReplaceAll(title, "/", "_")
}
