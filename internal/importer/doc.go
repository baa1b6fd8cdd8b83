// Package importer orchestrates one playlist import end to end: reference
// resolution, metadata lookup, path planning, copy decisions, and report
// emission. All per-item failures are contained at the item boundary.
package importer
