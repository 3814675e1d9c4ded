// Package logging assembles structured slog loggers and formatting helpers used
// across mia commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so traversal code can tag log
// lines with the run identifier and command name automatically. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Command results (tree lines, matches, counts) are written to the command's
// output stream directly; the logger carries diagnostics only.
package logging
