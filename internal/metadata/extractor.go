package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Extractor produces a Record for a media file. Implementations report
// unreadable or untagged files through the error; callers decide whether to
// substitute an empty record.
type Extractor interface {
	Extract(path string) (Record, error)
}

// TagExtractor reads embedded tags (ID3v1/v2, MP4 atoms, Vorbis comments)
// and normalizes them into the shared Record shape.
type TagExtractor struct{}

// NewTagExtractor returns the default tag-based extractor.
func NewTagExtractor() TagExtractor {
	return TagExtractor{}
}

// Extract opens the file, identifies its container, and maps the
// format-specific tags to a Record.
func (TagExtractor) Extract(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("open media file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Record{}, fmt.Errorf("read tags: %w", err)
	}
	return normalize(m), nil
}

func normalize(m tag.Metadata) Record {
	rec := Record{
		Artist:      strings.TrimSpace(m.Artist()),
		AlbumArtist: strings.TrimSpace(m.AlbumArtist()),
		Album:       strings.TrimSpace(m.Album()),
		Title:       strings.TrimSpace(m.Title()),
		Genre:       strings.TrimSpace(m.Genre()),
	}
	if track, _ := m.Track(); track > 0 {
		rec.TrackNumber = strconv.Itoa(track)
	}
	if year := m.Year(); year > 0 {
		rec.Year = strconv.Itoa(year)
	}
	return rec
}
