package eventrouter

import (
	"context"
	"encoding/json"
)

// Handler processes events dispatched by a Router.
//
// Handle receives the concrete event type that matched, not the pattern,
// so a single handler registered under a wildcard can branch on the full
// type. The data argument is the raw event payload; handlers own its
// decoding. The returned value is forwarded to the caller of Route
// unmodified and may be nil.
//
// Implementations must be safe for concurrent use: a Router invokes the
// same handler from any number of goroutines.
type Handler interface {
	Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
//
// Example:
//
//	r.Register("system.ping", eventrouter.HandlerFunc(func(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
//	    return "pong", nil
//	}))
type HandlerFunc func(ctx context.Context, eventType string, data json.RawMessage) (any, error)

// Handle calls f(ctx, eventType, data).
func (f HandlerFunc) Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
	return f(ctx, eventType, data)
}
