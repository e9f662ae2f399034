// Package eventrouter routes typed events to registered handlers by
// dot-delimited event-type patterns.
//
// The router maintains a mapping from patterns to handlers. A pattern is
// either an exact event type ("project.created") or a prefix followed by a
// trailing wildcard ("project.*") meaning "this prefix and any suffix".
// On dispatch the router resolves the most specific matching pattern,
// invokes the handler with the event payload and the caller's context, and
// returns the handler's result. When no pattern matches or the handler
// fails, Route returns a typed error instead.
//
// # Quick Start
//
// Define a handler for a group of event types:
//
//	type ProjectHandler struct {
//	    store ProjectStore
//	}
//
//	func (h *ProjectHandler) Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
//	    switch eventType {
//	    case "project.created":
//	        return h.create(ctx, data)
//	    case "project.deleted":
//	        return h.delete(ctx, data)
//	    }
//	    return map[string]string{"status": "ignored"}, nil
//	}
//
// Create a router, register handlers during bootstrap, and dispatch:
//
//	r := eventrouter.New()
//	r.Register("project.*", &ProjectHandler{store})
//	r.Register("system.health_check", healthHandler)
//
//	result, err := r.Route(ctx, "project.created", payload)
//
// # Pattern Matching
//
// Resolution is exact-first: an event type that equals a registered pattern
// dispatches to that handler. Otherwise every pattern of the form "prefix.*"
// is a candidate when the event type equals the prefix or extends it at a
// segment boundary ("project.*" matches "project", "project.created", and
// "project.build.started", but never "projects.created"). Among candidates
// the longest prefix wins, so registering both "project.*" and
// "project.build.*" sends "project.build.started" to the latter.
//
// Only a single trailing wildcard is supported. Patterns with wildcards
// elsewhere ("a.*.b", "*") are stored as ordinary literals and match only an
// identical event-type string.
//
// Matching is plain prefix comparison, not regex: resolution cost is one map
// lookup plus a scan of the wildcard registrations.
//
// # Handlers
//
// Handlers implement a single-method contract:
//
//	type Handler interface {
//	    Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error)
//	}
//
// The router holds handlers by reference and never manages their lifecycle.
// A handler's work may block on I/O; Route waits for completion and forwards
// the result unmodified. The context is passed through untouched; deadlines
// and invocation metadata are the caller's to install.
//
// Use HandlerFunc for simple cases without a struct:
//
//	r.RegisterFunc("system.ping", func(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
//	    return "pong", nil
//	})
//
// # Hooks
//
// Hooks provide observability without coupling the router to a logging or
// metrics system. They observe the dispatch flow and can never change its
// outcome. Use functional options to configure them:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnDispatch(func(ctx context.Context, eventType, pattern string) {
//	        logger.Debug("dispatching", "event_type", eventType, "pattern", pattern)
//	    }),
//	    eventrouter.WithOnFailure(func(ctx context.Context, eventType, pattern string, err error, d time.Duration) {
//	        logger.Error("handler failed", "event_type", eventType, "error", err)
//	    }),
//	)
//
// Available hooks:
//   - WithOnMatch: called after pattern resolution, may enrich the context
//   - WithOnDispatch: called just before the handler executes
//   - WithOnSuccess: called after the handler succeeds
//   - WithOnFailure: called after the handler fails
//   - WithOnUnhandled: called when no pattern matches
//
// Multiple hooks of the same kind are called in order.
//
// # Error Handling
//
// Route fails in exactly two ways:
//   - *UnhandledEventTypeError: no registered pattern (exact or wildcard)
//     matches the event type.
//   - *HandlerError: the resolved handler returned an error. The original
//     cause is available through errors.Unwrap/errors.Is/errors.As.
//
// The router does not retry or log failures; translating them into
// protocol-level responses is the caller's responsibility.
//
// # Thread Safety
//
// Router is safe for concurrent use after registration is complete. Register
// is intended for single-threaded bootstrap; do not call it concurrently
// with Route.
package eventrouter
