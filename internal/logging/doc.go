// Package logging assembles the structured slog loggers used across
// platter components.
//
// It centralizes level parsing, console/JSON handler selection, and output
// plumbing, and exposes attribute helpers so component code emits log lines
// with a consistent shape. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
