package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crate/internal/config"
	"crate/internal/importer"
	"crate/internal/logging"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var libraryDir string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "import <playlist>",
		Short: "Import the files of an M3U/M3U8 playlist into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(libraryDir) != "" {
				expanded, err := config.ExpandPath(libraryDir)
				if err != nil {
					return fmt.Errorf("resolve library dir: %w", err)
				}
				cfg.Paths.LibraryDir = expanded
			}
			if strings.TrimSpace(reportPath) != "" {
				expanded, err := config.ExpandPath(reportPath)
				if err != nil {
					return fmt.Errorf("resolve report path: %w", err)
				}
				cfg.Report.Path = expanded
			}

			playlistPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve playlist path: %w", err)
			}

			logger, logPath, err := logging.NewFromConfig(cfg, "crate.log")
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			result, err := importer.New(cfg, logger, logPath).Run(cmd.Context(), playlistPath)
			if err != nil {
				switch {
				case errors.Is(err, importer.ErrLocked):
					return fmt.Errorf("library is busy: %w", err)
				case errors.Is(err, importer.ErrNoValidFiles):
					return fmt.Errorf("nothing to import: %w", err)
				default:
					return err
				}
			}

			out := cmd.OutOrStdout()
			printRunSummary(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryDir, "library", "", "Destination library root (overrides configuration)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Path for the JSON run report (overrides configuration)")
	return cmd
}

func printRunSummary(out io.Writer, result *importer.Result) {
	stats := result.Report.Statistics
	rows := [][]string{
		{"Playlist entries", strconv.Itoa(stats.TotalEntries)},
		{"Valid files", strconv.Itoa(stats.ValidFiles)},
		{"Missing files", strconv.Itoa(stats.MissingFiles)},
		{"Copied", strconv.Itoa(stats.CopiedSuccess)},
		{"Skipped (already present)", strconv.Itoa(stats.CopiedSkipped)},
		{"Failed", strconv.Itoa(stats.CopiedFailed)},
		{"Data copied", humanBytes(stats.TotalSize)},
	}

	if isTerminal(out) {
		fmt.Fprintln(out, renderTable([]column{{title: "Result"}, {title: "Count", right: true}}, rows))
	} else {
		for _, row := range rows {
			fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
		}
	}

	if result.ReportWritten {
		fmt.Fprintf(out, "Report written to %s\n", result.ReportPath)
	} else {
		fmt.Fprintln(out, "Warning: run report could not be written; see the log for details")
	}
	if stats.CopiedFailed > 0 || stats.MissingFiles > 0 {
		fmt.Fprintf(out, "Warning: %d entries failed and %d were missing; details are in the report\n",
			stats.CopiedFailed, stats.MissingFiles)
	}
}
