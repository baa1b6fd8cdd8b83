package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crate/internal/metadata"
)

// Status is the terminal outcome of one processed reference.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Record captures the outcome of one playlist reference. Records are
// append-only and never mutated after creation.
type Record struct {
	SourcePath string          `json:"source_path"`
	TargetPath string          `json:"target_path,omitempty"`
	Filename   string          `json:"filename"`
	SizeBytes  int64           `json:"size_bytes"`
	Status     Status          `json:"status"`
	MD5        string          `json:"md5,omitempty"`
	Metadata   metadata.Record `json:"metadata"`
	Error      string          `json:"error,omitempty"`
}

// Stats holds the running counters for one import run.
type Stats struct {
	TotalEntries        int    `json:"total_entries"`
	ValidFiles          int    `json:"valid_files"`
	MissingFiles        int    `json:"missing_files"`
	MetadataReadSuccess int    `json:"metadata_read_success"`
	MetadataReadFailed  int    `json:"metadata_read_failed"`
	CopiedSuccess       int    `json:"copied_success"`
	CopiedSkipped       int    `json:"copied_skipped"`
	CopiedFailed        int    `json:"copied_failed"`
	TotalSize           int64  `json:"total_size"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
}

// RunMeta describes the parameters of one import run.
type RunMeta struct {
	RunID               string `json:"run_id"`
	Playlist            string `json:"playlist"`
	TargetBaseDirectory string `json:"target_base_directory"`
	DirectoryStructure  string `json:"directory_structure"`
	Timestamp           string `json:"timestamp"`
	LogFile             string `json:"log_file,omitempty"`
}

// Report is the persisted run document: run parameters, counters, and the
// ordered track outcomes.
type Report struct {
	Metadata   RunMeta  `json:"metadata"`
	Statistics Stats    `json:"statistics"`
	Tracks     []Record `json:"tracks"`
}

// Write persists the report as indented JSON, creating parent directories as
// needed.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read loads a previously persisted report.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

// StatsFromRecords re-derives the copy counters from the record sequence.
// Used to verify that the incrementally accumulated stats match the records.
func StatsFromRecords(records []Record) Stats {
	var stats Stats
	stats.ValidFiles = len(records)
	for _, rec := range records {
		switch rec.Status {
		case StatusSuccess:
			stats.CopiedSuccess++
			stats.TotalSize += rec.SizeBytes
		case StatusSkipped:
			stats.CopiedSkipped++
		case StatusFailed:
			stats.CopiedFailed++
		}
	}
	return stats
}

// ConsistentWith reports whether the copy counters in s agree with the given
// record sequence.
func (s Stats) ConsistentWith(records []Record) bool {
	derived := StatsFromRecords(records)
	return s.ValidFiles == derived.ValidFiles &&
		s.CopiedSuccess == derived.CopiedSuccess &&
		s.CopiedSkipped == derived.CopiedSkipped &&
		s.CopiedFailed == derived.CopiedFailed &&
		s.TotalSize == derived.TotalSize
}
