// Package services contains the shared error markers and wrapping helpers
// used by components that talk to external collaborators (metadata
// services, the encoder, the drive).
package services
