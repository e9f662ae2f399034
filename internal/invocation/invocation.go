// Package invocation carries per-invocation metadata through a
// context.Context. The boundary populates it before dispatch; handlers
// read it to enrich their results. The router in between treats the
// context as opaque.
package invocation

import "context"

// Metadata describes one invocation of the event handler.
type Metadata struct {
	// FunctionName is the configured name of this handler deployment.
	FunctionName string

	// RequestID uniquely identifies the invocation. The boundary echoes
	// it in the response envelope.
	RequestID string
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying md.
func NewContext(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, contextKey{}, md)
}

// FromContext extracts the invocation metadata from ctx. The zero Metadata
// and false are returned when none was attached.
func FromContext(ctx context.Context) (Metadata, bool) {
	md, ok := ctx.Value(contextKey{}).(Metadata)
	return md, ok
}
