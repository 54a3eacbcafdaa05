// Package history persists completed rip jobs and their per-track outcomes
// in SQLite so past sessions survive restarts.
package history
