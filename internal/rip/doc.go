// Package rip drives the per-track extract, encode and tag pipeline for
// one job. Tracks are processed strictly sequentially because a single
// drive has a single read head; progress reaches the caller through an
// event stream so the caller never blocks on drive I/O.
package rip
