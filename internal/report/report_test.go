package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"crate/internal/metadata"
	"crate/internal/report"
)

func sampleRecords() []report.Record {
	return []report.Record{
		{SourcePath: "/a/1.mp3", TargetPath: "/lib/A/B/1.mp3", Filename: "1.mp3", SizeBytes: 100, Status: report.StatusSuccess, MD5: "abc"},
		{SourcePath: "/a/2.mp3", TargetPath: "/lib/A/B/1.mp3", Filename: "1.mp3", SizeBytes: 100, Status: report.StatusSkipped, MD5: "abc"},
		{SourcePath: "/a/3.mp3", Filename: "3.mp3", Status: report.StatusFailed, Error: "copy failed"},
	}
}

func TestStatsFromRecords(t *testing.T) {
	stats := report.StatsFromRecords(sampleRecords())
	if stats.ValidFiles != 3 {
		t.Fatalf("ValidFiles = %d", stats.ValidFiles)
	}
	if stats.CopiedSuccess != 1 || stats.CopiedSkipped != 1 || stats.CopiedFailed != 1 {
		t.Fatalf("counters = %d/%d/%d", stats.CopiedSuccess, stats.CopiedSkipped, stats.CopiedFailed)
	}
	if stats.TotalSize != 100 {
		t.Fatalf("TotalSize = %d", stats.TotalSize)
	}
}

func TestConsistentWith(t *testing.T) {
	records := sampleRecords()
	stats := report.Stats{ValidFiles: 3, CopiedSuccess: 1, CopiedSkipped: 1, CopiedFailed: 1, TotalSize: 100}
	if !stats.ConsistentWith(records) {
		t.Fatal("expected stats to be consistent with records")
	}
	stats.CopiedSuccess = 2
	if stats.ConsistentWith(records) {
		t.Fatal("expected inconsistency to be detected")
	}
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "imported_tracks.json")
	rep := &report.Report{
		Metadata: report.RunMeta{
			RunID:               "run-1",
			Playlist:            "/music/list.m3u8",
			TargetBaseDirectory: "/lib",
			DirectoryStructure:  "Artist/Album/Track",
			Timestamp:           "2026-01-02T03:04:05Z",
		},
		Statistics: report.Stats{TotalEntries: 3, ValidFiles: 3, CopiedSuccess: 1, CopiedSkipped: 1, CopiedFailed: 1, TotalSize: 100},
		Tracks:     sampleRecords(),
	}
	if err := rep.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := report.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.Metadata.RunID != "run-1" || len(loaded.Tracks) != 3 {
		t.Fatalf("round trip mismatch: %+v", loaded.Metadata)
	}
	if loaded.Tracks[2].Status != report.StatusFailed || loaded.Tracks[2].Error == "" {
		t.Fatalf("failed track not preserved: %+v", loaded.Tracks[2])
	}
}

func TestReportTopLevelBlocks(t *testing.T) {
	rep := &report.Report{
		Metadata:   report.RunMeta{RunID: "r"},
		Statistics: report.Stats{},
		Tracks:     []report.Record{},
	}
	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"metadata", "statistics", "tracks"} {
		if _, ok := top[key]; !ok {
			t.Fatalf("missing top-level block %q in %s", key, data)
		}
	}
}

func TestFailedRecordOmitsTargetAndDigest(t *testing.T) {
	rec := report.Record{
		SourcePath: "/a/3.mp3",
		Filename:   "3.mp3",
		Status:     report.StatusFailed,
		Metadata:   metadata.Record{},
		Error:      "boom",
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["target_path"]; ok {
		t.Fatal("empty target_path should be omitted")
	}
	if _, ok := fields["md5"]; ok {
		t.Fatal("empty md5 should be omitted")
	}
	if fields["error"] != "boom" {
		t.Fatalf("error field = %v", fields["error"])
	}
	if err := os.WriteFile(filepath.Join(t.TempDir(), "r.json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
