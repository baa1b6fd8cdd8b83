package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPlaylist marks a playlist that could not be read at all.
	ErrPlaylist = errors.New("playlist unreadable")
	// ErrNoValidFiles marks a playlist that yielded nothing to import.
	ErrNoValidFiles = errors.New("no valid files")
	// ErrLocked marks a library root already claimed by another import.
	ErrLocked = errors.New("library locked")
	// ErrCopy marks a per-item copy failure; it is recorded, never fatal.
	ErrCopy = errors.New("copy failed")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for classification by callers.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "import failure"
	}
	return strings.Join(parts, ": ")
}
