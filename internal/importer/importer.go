package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"crate/internal/catalog"
	"crate/internal/config"
	"crate/internal/fileutil"
	"crate/internal/logging"
	"crate/internal/metadata"
	"crate/internal/pathplan"
	"crate/internal/playlist"
	"crate/internal/preflight"
	"crate/internal/report"
)

const lockFileName = ".crate.lock"

// Importer sequences one playlist import: resolution, metadata lookup, path
// planning, copy decisions, and record emission. Processing is strictly
// sequential; playlist order decides which duplicate claims the unsuffixed
// name.
type Importer struct {
	cfg       *config.Config
	extractor metadata.Extractor
	logger    *slog.Logger
	logPath   string

	now      func() time.Time
	newRunID func() string
}

// Result is the outcome of a whole run.
type Result struct {
	Report        *report.Report
	ReportPath    string
	ReportWritten bool
	CatalogSaved  bool
}

// New constructs an importer with the default tag-based metadata extractor.
func New(cfg *config.Config, logger *slog.Logger, logPath string) *Importer {
	return NewWithExtractor(cfg, logger, logPath, metadata.NewTagExtractor())
}

// NewWithExtractor allows injecting the metadata extractor (used in tests).
func NewWithExtractor(cfg *config.Config, logger *slog.Logger, logPath string, extractor metadata.Extractor) *Importer {
	return &Importer{
		cfg:       cfg,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "importer"),
		logPath:   logPath,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run imports every valid reference from the playlist in order. It fails only
// when the playlist cannot be read, yields zero valid files, or the library
// is locked by another import; per-item failures are contained in the records.
func (imp *Importer) Run(ctx context.Context, playlistPath string) (*Result, error) {
	start := imp.now().UTC()

	if err := imp.cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrPlaylist, "prepare directories", "failed to create run directories", err)
	}

	root := imp.cfg.Paths.LibraryDir
	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrLocked, "acquire lock", "failed to acquire library lock", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, "acquire lock", "another import is writing to this library", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	imp.logger.Info("parsing playlist", logging.String("playlist", playlistPath))
	sources, summary, err := playlist.Parse(playlistPath, imp.logger)
	if err != nil {
		return nil, Wrap(ErrPlaylist, "parse playlist", playlistPath, err)
	}
	imp.logger.Info("playlist parsed",
		logging.Int("total_entries", summary.TotalEntries),
		logging.Int("valid_files", summary.ValidFiles),
		logging.Int("missing_files", summary.MissingFiles),
	)
	if len(sources) == 0 {
		return nil, Wrap(ErrNoValidFiles, "parse playlist", "playlist yielded no importable files", nil)
	}

	for _, check := range preflight.CheckAll(root, totalSourceBytes(sources)) {
		if !check.Passed {
			imp.logger.Warn("preflight check failed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail),
			)
		}
	}

	stats := report.Stats{
		TotalEntries: summary.TotalEntries,
		ValidFiles:   summary.ValidFiles,
		MissingFiles: summary.MissingFiles,
		StartTime:    start.Format(time.RFC3339),
	}
	planner := pathplan.NewPlanner(root)
	records := make([]report.Record, 0, len(sources))

	imp.logger.Info("copying files", logging.String("library_dir", root))
	for idx, source := range sources {
		rec := imp.processItem(planner, source, idx+1, len(sources), &stats)
		records = append(records, rec)
	}

	stats.EndTime = imp.now().UTC().Format(time.RFC3339)
	if !stats.ConsistentWith(records) {
		imp.logger.Warn("run counters disagree with record sequence")
	}

	rep := &report.Report{
		Metadata: report.RunMeta{
			RunID:               imp.newRunID(),
			Playlist:            playlistPath,
			TargetBaseDirectory: root,
			DirectoryStructure:  "Artist/Album/Track",
			Timestamp:           start.Format(time.RFC3339),
			LogFile:             imp.logPath,
		},
		Statistics: stats,
		Tracks:     records,
	}

	result := &Result{Report: rep, ReportPath: imp.cfg.Report.Path}
	if err := rep.Write(imp.cfg.Report.Path); err != nil {
		// Report loss must not fail a run whose copies succeeded.
		imp.logger.Warn("failed to persist run report",
			logging.String("path", imp.cfg.Report.Path),
			logging.Error(err),
		)
	} else {
		result.ReportWritten = true
		imp.logger.Info("report written", logging.String("path", imp.cfg.Report.Path))
	}

	if imp.cfg.Catalog.Enabled {
		if err := imp.saveToCatalog(ctx, rep); err != nil {
			imp.logger.Warn("failed to record run in catalog", logging.Error(err))
		} else {
			result.CatalogSaved = true
		}
	}

	imp.logger.Info("import finished",
		logging.Int("copied", stats.CopiedSuccess),
		logging.Int("skipped", stats.CopiedSkipped),
		logging.Int("failed", stats.CopiedFailed),
		logging.Int64("bytes", stats.TotalSize),
	)
	return result, nil
}

func (imp *Importer) processItem(planner *pathplan.Planner, source string, idx, total int, stats *report.Stats) report.Record {
	meta, err := imp.extractor.Extract(source)
	if err != nil {
		meta = metadata.Record{}
		stats.MetadataReadFailed++
		imp.logger.Warn("metadata extraction failed",
			logging.String("source", filepath.Base(source)),
			logging.Error(err),
		)
	} else {
		stats.MetadataReadSuccess++
	}

	rec := report.Record{
		SourcePath: source,
		Filename:   filepath.Base(source),
		Metadata:   meta,
	}

	decision, err := planner.Plan(source, meta)
	if err != nil {
		rec.Status = report.StatusFailed
		rec.Error = err.Error()
		stats.CopiedFailed++
		imp.logger.Error("path planning failed",
			logging.String("progress", progress(idx, total)),
			logging.String("source", filepath.Base(source)),
			logging.Error(err),
		)
		return rec
	}
	rec.TargetPath = decision.Path
	rec.Filename = decision.Filename

	if decision.Identical {
		rec.Status = report.StatusSkipped
		imp.fillTargetFacts(&rec, decision.Path)
		stats.CopiedSkipped++
		imp.logger.Info("skipped, already in library",
			logging.String("progress", progress(idx, total)),
			logging.String("target", decision.Path),
		)
		return rec
	}

	if err := fileutil.CopyFile(source, decision.Path); err != nil {
		err = Wrap(ErrCopy, "copy file", filepath.Base(source), err)
		rec.Status = report.StatusFailed
		rec.Error = err.Error()
		stats.CopiedFailed++
		imp.logger.Error("copy failed",
			logging.String("progress", progress(idx, total)),
			logging.String("source", filepath.Base(source)),
			logging.Error(err),
		)
		return rec
	}

	rec.Status = report.StatusSuccess
	imp.fillTargetFacts(&rec, decision.Path)
	stats.CopiedSuccess++
	stats.TotalSize += rec.SizeBytes
	imp.logger.Info("copied",
		logging.String("progress", progress(idx, total)),
		logging.String("target", decision.Path),
		logging.Int64("bytes", rec.SizeBytes),
	)
	return rec
}

// fillTargetFacts records the destination's size and digest; the digest is
// read back from the target so it also validates future identity checks.
func (imp *Importer) fillTargetFacts(rec *report.Record, target string) {
	if info, err := os.Stat(target); err == nil {
		rec.SizeBytes = info.Size()
	}
	if hash, err := fileutil.HashFile(target); err == nil {
		rec.MD5 = hash
	} else {
		imp.logger.Warn("failed to hash target", logging.String("target", target), logging.Error(err))
	}
}

func (imp *Importer) saveToCatalog(ctx context.Context, rep *report.Report) error {
	store, err := catalog.Open(imp.cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(ctx, rep)
}

func totalSourceBytes(sources []string) int64 {
	var total int64
	for _, source := range sources {
		if info, err := os.Stat(source); err == nil {
			total += info.Size()
		}
	}
	return total
}

func progress(idx, total int) string {
	return fmt.Sprintf("[%d/%d]", idx, total)
}
