// Package notifications defines the desktop notification contract shared by app services and UI backends.
package notifications

type Payload struct {
	Title   string
	Content string
}

// Sender delivers a payload. Implementations must be safe to call from any goroutine.
type Sender interface {
	Send(payload Payload)
}
