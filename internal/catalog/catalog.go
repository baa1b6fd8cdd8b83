package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"crate/internal/report"
)

// Store keeps the cross-run import history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          TEXT PRIMARY KEY,
    playlist        TEXT NOT NULL,
    library_dir     TEXT NOT NULL,
    started_at      TEXT NOT NULL,
    finished_at     TEXT NOT NULL,
    total_entries   INTEGER NOT NULL,
    valid_files     INTEGER NOT NULL,
    missing_files   INTEGER NOT NULL,
    copied_success  INTEGER NOT NULL,
    copied_skipped  INTEGER NOT NULL,
    copied_failed   INTEGER NOT NULL,
    total_size      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tracks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    target_path TEXT,
    filename    TEXT NOT NULL,
    size_bytes  INTEGER NOT NULL,
    status      TEXT NOT NULL,
    md5         TEXT,
    error       TEXT
);
CREATE INDEX IF NOT EXISTS idx_tracks_run ON tracks(run_id, position);
`

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SaveRun records a completed import run and its ordered track outcomes in a
// single transaction.
func (s *Store) SaveRun(ctx context.Context, rep *report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, playlist, library_dir, started_at, finished_at,
            total_entries, valid_files, missing_files,
            copied_success, copied_skipped, copied_failed, total_size
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.Metadata.RunID,
		rep.Metadata.Playlist,
		rep.Metadata.TargetBaseDirectory,
		rep.Statistics.StartTime,
		rep.Statistics.EndTime,
		rep.Statistics.TotalEntries,
		rep.Statistics.ValidFiles,
		rep.Statistics.MissingFiles,
		rep.Statistics.CopiedSuccess,
		rep.Statistics.CopiedSkipped,
		rep.Statistics.CopiedFailed,
		rep.Statistics.TotalSize,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO tracks (
            run_id, position, source_path, target_path,
            filename, size_bytes, status, md5, error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare track insert: %w", err)
	}
	defer stmt.Close()

	for position, track := range rep.Tracks {
		if _, err := stmt.ExecContext(
			ctx,
			rep.Metadata.RunID,
			position,
			track.SourcePath,
			nullableString(track.TargetPath),
			track.Filename,
			track.SizeBytes,
			string(track.Status),
			nullableString(track.MD5),
			nullableString(track.Error),
		); err != nil {
			return fmt.Errorf("insert track %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RunSummary is one row of import history.
type RunSummary struct {
	RunID         string
	Playlist      string
	LibraryDir    string
	StartedAt     string
	ValidFiles    int
	CopiedSuccess int
	CopiedSkipped int
	CopiedFailed  int
	TotalSize     int64
}

// RecentRuns lists the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, playlist, library_dir, started_at,
                valid_files, copied_success, copied_skipped, copied_failed, total_size
         FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(
			&run.RunID, &run.Playlist, &run.LibraryDir, &run.StartedAt,
			&run.ValidFiles, &run.CopiedSuccess, &run.CopiedSkipped, &run.CopiedFailed, &run.TotalSize,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TracksForRun returns the ordered track outcomes recorded for one run.
func (s *Store) TracksForRun(ctx context.Context, runID string) ([]report.Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source_path, target_path, filename, size_bytes, status, md5, error
         FROM tracks WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []report.Record
	for rows.Next() {
		var (
			rec    report.Record
			target sql.NullString
			md5    sql.NullString
			errMsg sql.NullString
			status string
		)
		if err := rows.Scan(&rec.SourcePath, &target, &rec.Filename, &rec.SizeBytes, &status, &md5, &errMsg); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		rec.TargetPath = target.String
		rec.MD5 = md5.String
		rec.Error = errMsg.String
		rec.Status = report.Status(status)
		tracks = append(tracks, rec)
	}
	return tracks, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
