// Package preflight runs destination checks (writability, free space) before
// an import begins. Failures are advisory; per-item copy errors remain the
// authoritative failure signal.
package preflight
