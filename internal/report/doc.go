// Package report accumulates per-track import outcomes and run statistics,
// and renders them as the persisted JSON run report.
package report
