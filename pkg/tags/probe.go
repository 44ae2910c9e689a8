package tags

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dhowden/tag"
)

// ProbeFile sniffs path for embedded metadata (ID3, Vorbis comments,
// MP4 atoms) and reports what it finds to h. It never decodes audio.
// A file without recognizable tags is not an error: the probe simply
// reports false.
func ProbeFile(path string, h Handler) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to probe %q: %w", path, err)
	}

	h.OnTag(TypeTitle, m.Title())
	h.OnTag(TypeArtist, m.Artist())
	h.OnTag(TypeAlbum, m.Album())
	h.OnTag(TypeAlbumArtist, m.AlbumArtist())
	h.OnTag(TypeComposer, m.Composer())
	h.OnTag(TypeGenre, m.Genre())
	h.OnTag(TypeComment, m.Comment())
	if year := m.Year(); year > 0 {
		h.OnTag(TypeDate, strconv.Itoa(year))
	}
	if track, _ := m.Track(); track > 0 {
		h.OnTag(TypeTrack, strconv.Itoa(track))
	}
	if disc, _ := m.Disc(); disc > 0 {
		h.OnTag(TypeDisc, strconv.Itoa(disc))
	}
	return true, nil
}
