// Package preflight validates the runtime environment before a rip:
// directory permissions, the optical device node and the external binaries
// the configured features depend on.
package preflight
