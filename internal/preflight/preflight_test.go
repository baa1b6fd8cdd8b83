package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"crate/internal/preflight"
)

func TestCheckLibraryAccessWritableDir(t *testing.T) {
	result := preflight.CheckLibraryAccess(t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestCheckLibraryAccessMissingDir(t *testing.T) {
	result := preflight.CheckLibraryAccess(filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}

func TestCheckLibraryAccessRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result := preflight.CheckLibraryAccess(path)
	if result.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := preflight.CheckFreeSpace(dir, 1); !result.Passed {
		t.Fatalf("expected pass for 1 byte requirement, got %+v", result)
	}
	const absurd = int64(1) << 62
	if result := preflight.CheckFreeSpace(dir, absurd); result.Passed {
		t.Fatalf("expected failure for absurd requirement, got %+v", result)
	}
}

func TestCheckAllShortCircuitsOnAccessFailure(t *testing.T) {
	results := preflight.CheckAll(filepath.Join(t.TempDir(), "absent"), 1)
	if len(results) != 1 {
		t.Fatalf("expected single result, got %d", len(results))
	}
}
