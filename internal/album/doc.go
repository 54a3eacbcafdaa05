// Package album holds the in-memory, user-editable album model produced by
// metadata resolution and consumed by the rip orchestrator.
//
// A Session wraps the album with the single-writer discipline: edits are
// only permitted while no rip snapshot is outstanding. Track count and
// ordering always mirror the physical TOC and can never change.
package album
