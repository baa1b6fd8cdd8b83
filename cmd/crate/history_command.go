package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crate/internal/catalog"
	"crate/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded import runs, or the tracks of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Catalog.Enabled {
				return errors.New("the import catalog is disabled; enable it in the configuration to record history")
			}

			store, err := catalog.Open(cfg.Catalog.Path)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return printRunTracks(cmd, store, args[0])
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No import runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.RunID,
					run.StartedAt,
					run.Playlist,
					strconv.Itoa(run.CopiedSuccess),
					strconv.Itoa(run.CopiedSkipped),
					strconv.Itoa(run.CopiedFailed),
					humanBytes(run.TotalSize),
				})
			}
			columns := []column{
				{title: "Run"},
				{title: "Started"},
				{title: "Playlist"},
				{title: "Copied", right: true},
				{title: "Skipped", right: true},
				{title: "Failed", right: true},
				{title: "Size", right: true},
			}
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func printRunTracks(cmd *cobra.Command, store *catalog.Store, runID string) error {
	tracks, err := store.TracksForRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}
	out := cmd.OutOrStdout()
	if len(tracks) == 0 {
		fmt.Fprintf(out, "No tracks recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		detail := track.TargetPath
		if track.Status == report.StatusFailed {
			detail = track.Error
		}
		rows = append(rows, []string{
			track.Filename,
			string(track.Status),
			humanBytes(track.SizeBytes),
			detail,
		})
	}
	columns := []column{
		{title: "File"},
		{title: "Status"},
		{title: "Size", right: true},
		{title: "Target / Error"},
	}
	fmt.Fprintln(out, renderTable(columns, rows))
	return nil
}
