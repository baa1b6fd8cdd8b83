package pathplan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crate/internal/fileutil"
	"crate/internal/metadata"
)

const (
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"

	// maxCollisionAttempts caps how many " (n)" suffixes are probed before
	// the item is failed.
	maxCollisionAttempts = 100
)

// ErrCollisionExhausted marks a plan that ran out of collision suffixes.
var ErrCollisionExhausted = errors.New("collision suffix attempts exhausted")

// Decision is the planned destination for one source file.
type Decision struct {
	Dir      string
	Filename string
	Path     string
	// Identical means the destination already holds the source's exact
	// bytes; the caller should skip the copy.
	Identical bool
}

// Planner maps (source file, metadata) pairs to destination paths under a
// fixed library root.
type Planner struct {
	root      string
	identical func(a, b string) (bool, error)
}

// NewPlanner constructs a planner rooted at the library directory.
func NewPlanner(root string) *Planner {
	return &Planner{root: root, identical: fileutil.FilesIdentical}
}

// SetComparatorForTests overrides the content comparator and returns a restore
// function.
func (p *Planner) SetComparatorForTests(fn func(a, b string) (bool, error)) func() {
	prev := p.identical
	p.identical = fn
	return func() { p.identical = prev }
}

// Plan derives the destination for sourcePath from its metadata, creating the
// Artist/Album directory and resolving filename collisions against existing
// content. Byte-identical collisions return the existing path with Identical
// set; different-content collisions grow a " (n)" suffix in probe order.
func (p *Planner) Plan(sourcePath string, meta metadata.Record) (Decision, error) {
	artist := firstNonEmpty(meta.AlbumArtist, meta.Artist, unknownArtist)
	album := firstNonEmpty(meta.Album, unknownAlbum)

	dir := filepath.Join(p.root, Sanitize(artist), Sanitize(album))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Decision{}, fmt.Errorf("create album directory: %w", err)
	}

	filename := planFilename(sourcePath, meta)
	return p.resolveCollisions(sourcePath, dir, filename)
}

func planFilename(sourcePath string, meta metadata.Record) string {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		// The original name already exists on disk, so it is legal as-is.
		return filepath.Base(sourcePath)
	}

	ext := filepath.Ext(sourcePath)
	name := title + ext
	if track, ok := parseTrackNumber(meta.TrackNumber); ok {
		name = fmt.Sprintf("%02d - %s%s", track, title, ext)
	}
	return Sanitize(name)
}

// parseTrackNumber reads the leading integer from values like "3" or "3/12".
func parseTrackNumber(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	if idx := strings.IndexByte(value, '/'); idx >= 0 {
		value = value[:idx]
	}
	track, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return track, true
}

func (p *Planner) resolveCollisions(sourcePath, dir, filename string) (Decision, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for attempt := 0; attempt <= maxCollisionAttempts; attempt++ {
		name := filename
		if attempt > 0 {
			name = fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		}
		candidate := filepath.Join(dir, name)

		info, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return Decision{Dir: dir, Filename: name, Path: candidate}, nil
		}
		if err != nil {
			return Decision{}, fmt.Errorf("stat candidate %s: %w", candidate, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		same, err := p.identical(sourcePath, candidate)
		if err == nil && same {
			return Decision{Dir: dir, Filename: name, Path: candidate, Identical: true}, nil
		}
	}

	return Decision{}, fmt.Errorf("%w: %s in %s", ErrCollisionExhausted, filename, dir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
