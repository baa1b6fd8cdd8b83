package playlist

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"crate/internal/logging"
)

// Summary counts the outcome of parsing one playlist.
type Summary struct {
	TotalEntries int
	ValidFiles   int
	MissingFiles int
}

// Parse streams the playlist at path and returns the ordered list of resolved,
// existing source files. Blank lines and '#' comments are skipped without
// counting; entries that do not resolve to a regular file are logged at
// warning level and counted as missing. A playlist that cannot be read is a
// fatal error.
func Parse(path string, logger *slog.Logger) ([]string, Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("open playlist: %w", err)
	}
	defer file.Close()

	baseDir := filepath.Dir(path)
	var (
		summary Summary
		paths   []string
		lineNum int
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		summary.TotalEntries++
		resolved, ok := Resolve(line, baseDir)
		if !ok {
			summary.MissingFiles++
			logger.Warn("playlist entry did not resolve to a file",
				logging.Int("line", lineNum),
				logging.String("entry", line),
			)
			continue
		}
		summary.ValidFiles++
		paths = append(paths, resolved)
	}
	if err := scanner.Err(); err != nil {
		return nil, Summary{}, fmt.Errorf("read playlist: %w", err)
	}

	return paths, summary, nil
}

// Resolve turns one playlist entry into an absolute path to an existing
// regular file. It decodes file:// URIs and percent escapes, expands a leading
// tilde, and resolves relative entries against baseDir. The boolean is false
// when the entry does not name a regular file.
func Resolve(line, baseDir string) (string, bool) {
	entry := strings.TrimSpace(line)
	if entry == "" {
		return "", false
	}

	if strings.HasPrefix(entry, "file://") {
		if parsed, err := url.Parse(entry); err == nil && parsed.Path != "" {
			entry = parsed.Path
		}
	}
	if decoded, err := url.PathUnescape(entry); err == nil {
		entry = decoded
	}
	entry = expandHome(entry)

	if !filepath.IsAbs(entry) {
		entry = filepath.Join(baseDir, entry)
	}
	resolved, err := filepath.Abs(filepath.Clean(entry))
	if err != nil {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
