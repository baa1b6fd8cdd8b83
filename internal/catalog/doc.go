// Package catalog persists import history across runs in a SQLite database,
// one row per run plus the ordered track outcomes.
package catalog
