// Package notifications delivers push notifications through ntfy. When no
// topic is configured every notification silently succeeds.
package notifications
