// Package logging assembles structured slog loggers and formatting helpers used
// across durazubs.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run ID, track, and step. A no-op logger is provided for
// tests and for library code invoked without a logger.
package logging
