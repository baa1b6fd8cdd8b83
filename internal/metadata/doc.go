// Package metadata defines the normalized per-track metadata record and the
// extractor that maps format-specific audio tags into it. This is the only
// place in the importer with per-format knowledge.
package metadata
