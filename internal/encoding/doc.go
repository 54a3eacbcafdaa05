// Package encoding converts extracted CD audio into the configured output
// format and writes metadata tags into the result. FLAC and MP3 tags are
// written directly; Vorbis and Opus tags ride along on the ffmpeg command
// line.
package encoding
