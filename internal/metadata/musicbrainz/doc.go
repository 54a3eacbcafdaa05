// Package musicbrainz implements the primary metadata lookup source
// against the MusicBrainz ws/2 disc ID endpoint.
package musicbrainz
