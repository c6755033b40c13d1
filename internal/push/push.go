// Package push delivers best-effort mobile notifications. Delivery is
// fire-and-forget from the dispatcher's point of view: errors are
// reported to the caller for logging but never change domain state.
package push

import "context"

// Message is a single notification for a single device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender attempts one delivery per call. Implementations must respect
// ctx cancellation; the dispatcher bounds each attempt with a timeout.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NopSender discards every message. Used in development and tests when
// no push credentials are configured.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, msg Message) error {
	return nil
}
