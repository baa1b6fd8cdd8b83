// Package logging constructs the process-wide slog logger. The console
// handler renders one timestamped, level-tagged line per record; the JSON
// handler is available for machine consumption.
package logging
