// Package metadata resolves album metadata for a disc through an ordered
// chain of lookup sources with fallback.
//
// The chain short-circuits on the first source that returns a candidate;
// lookup failures of any kind fall through to the next source and are
// never fatal. When every source misses, resolution degrades to a manual
// album the user must fill in. On-disc CD-Text, when present, overlays
// fields the winning source did not supply.
package metadata
