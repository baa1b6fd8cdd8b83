package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckLibraryAccess verifies that the library root exists and is writable.
func CheckLibraryAccess(path string) Result {
	const name = "Library directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// requiredBytes available.
func CheckFreeSpace(path string, requiredBytes int64) Result {
	const name = "Free space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < requiredBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%d bytes available, %d required", available, requiredBytes)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes available", available)}
}

// CheckAll runs the destination checks for an import of requiredBytes into root.
func CheckAll(root string, requiredBytes int64) []Result {
	results := []Result{CheckLibraryAccess(root)}
	if results[0].Passed {
		results = append(results, CheckFreeSpace(root, requiredBytes))
	}
	return results
}
