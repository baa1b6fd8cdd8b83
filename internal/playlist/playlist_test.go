package playlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crate/internal/logging"
	"crate/internal/playlist"
)

func writePlaylist(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "list.m3u8")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}
	return path
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestParseSkipsCommentsAndCountsMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))
	path := writePlaylist(t, dir,
		"#EXTM3U",
		"",
		"#EXTINF:123,Artist - Title",
		"song.mp3",
		"missing.mp3",
	)

	paths, summary, err := playlist.Parse(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if summary.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d, want 2", summary.TotalEntries)
	}
	if summary.ValidFiles != 1 || summary.MissingFiles != 1 {
		t.Fatalf("valid=%d missing=%d, want 1/1", summary.ValidFiles, summary.MissingFiles)
	}
	if len(paths) != 1 || paths[0] != filepath.Join(dir, "song.mp3") {
		t.Fatalf("paths = %v", paths)
	}
}

func TestParseUnreadablePlaylistFails(t *testing.T) {
	if _, _, err := playlist.Parse(filepath.Join(t.TempDir(), "nope.m3u8"), nil); err == nil {
		t.Fatal("expected error for missing playlist")
	}
}

func TestParsePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mp3"))
	touch(t, filepath.Join(dir, "a.mp3"))
	path := writePlaylist(t, dir, "b.mp3", "a.mp3")

	paths, _, err := playlist.Parse(path, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[0], "b.mp3") || !strings.HasSuffix(paths[1], "a.mp3") {
		t.Fatalf("order not preserved: %v", paths)
	}
}

func TestResolveRelative(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "track.flac")
	touch(t, target)

	got, ok := playlist.Resolve("sub/track.flac", dir)
	if !ok || got != target {
		t.Fatalf("Resolve = %q, %v", got, ok)
	}
}

func TestResolveFileURI(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "My Track.mp3")
	touch(t, target)

	uri := "file://" + strings.ReplaceAll(target, " ", "%20")
	got, ok := playlist.Resolve(uri, "/elsewhere")
	if !ok || got != target {
		t.Fatalf("Resolve(%q) = %q, %v", uri, got, ok)
	}
}

func TestResolvePercentEncoded(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a b.mp3")
	touch(t, target)

	got, ok := playlist.Resolve("a%20b.mp3", dir)
	if !ok || got != target {
		t.Fatalf("Resolve = %q, %v", got, ok)
	}
}

func TestResolveRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "album")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, ok := playlist.Resolve("album", dir); ok {
		t.Fatal("directories must not resolve")
	}
}
