package flacdec

import (
	"fmt"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"

	"github.com/aulos-player/aulos/pkg/tags"
)

// vorbisTags maps the Vorbis comment names this scanner understands.
// Comment names match case-insensitively.
var vorbisTags = map[string]tags.Type{
	"title":       tags.TypeTitle,
	"artist":      tags.TypeArtist,
	"album":       tags.TypeAlbum,
	"albumartist": tags.TypeAlbumArtist,
	"tracknumber": tags.TypeTrack,
	"discnumber":  tags.TypeDisc,
	"genre":       tags.TypeGenre,
	"date":        tags.TypeDate,
	"composer":    tags.TypeComposer,
	"comment":     tags.TypeComment,
	"description": tags.TypeComment,
}

func scanFile(path string, h tags.Handler) error {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file %q: %w", path, err)
	}
	defer stream.Close()

	if d := streamDuration(stream.Info); d >= 0 {
		h.OnDuration(d)
	}

	for _, block := range stream.Blocks {
		vc, ok := block.Body.(*meta.VorbisComment)
		if !ok {
			continue
		}
		for _, entry := range vc.Tags {
			name, value := entry[0], entry[1]
			if t, ok := vorbisTags[strings.ToLower(name)]; ok {
				h.OnTag(t, value)
			} else {
				h.OnPair(name, value)
			}
		}
	}

	return nil
}
