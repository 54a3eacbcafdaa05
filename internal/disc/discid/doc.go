// Package discid computes the lookup keys derived from a disc's table of
// contents.
//
// Both IDs are pure functions of the TOC. The arithmetic is bit-exact with
// the reference algorithms used by the lookup services; any deviation
// causes systematic lookup misses, so change nothing here without a
// verified test vector.
package discid
