// Package disc reads the audio CD table of contents and CD-Text, and
// exposes the drive capabilities the rest of the system depends on.
//
// The TOC is read exactly once per session and never mutated afterwards;
// everything downstream (fingerprinting, metadata lookup, extraction)
// works from that single read.
package disc
