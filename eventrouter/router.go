package eventrouter

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// wildcardSuffix marks a pattern whose final segment matches any suffix.
const wildcardSuffix = ".*"

// Router dispatches events to handlers registered under dot-delimited
// patterns. The zero value is not usable; create routers with New.
//
// Router is safe for concurrent use once registration is complete. Register
// during bootstrap, then share the router freely across goroutines.
type Router struct {
	handlers map[string]Handler
	hooks    hooks
}

// New creates a Router configured by the given options.
func New(opts ...Option) *Router {
	r := &Router{
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a handler to a pattern. The pattern is an exact event type
// or a prefix with a trailing wildcard, e.g. "project.*". Registering the
// same pattern again replaces the previous handler.
//
// Register panics on an empty pattern or a nil handler; both are
// programming errors caught at bootstrap.
func (r *Router) Register(pattern string, h Handler) {
	if pattern == "" {
		panic("eventrouter: Register with empty pattern")
	}
	if h == nil {
		panic("eventrouter: Register with nil handler for pattern " + pattern)
	}
	r.handlers[pattern] = h
}

// RegisterFunc binds a plain function to a pattern.
func (r *Router) RegisterFunc(pattern string, fn func(ctx context.Context, eventType string, data json.RawMessage) (any, error)) {
	r.Register(pattern, HandlerFunc(fn))
}

// Patterns returns the registered patterns in lexical order.
func (r *Router) Patterns() []string {
	patterns := make([]string, 0, len(r.handlers))
	for p := range r.handlers {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// Route resolves eventType to a handler and invokes it with data.
//
// Resolution tries an exact pattern first, then the wildcard pattern with
// the longest matching prefix. On success Route returns the handler's
// result. When no pattern matches it returns *UnhandledEventTypeError; when
// the handler fails it returns *HandlerError wrapping the cause.
//
// The context is forwarded to the handler unmodified except for changes
// applied by OnMatch hooks. Route itself neither installs deadlines nor
// checks ctx; cancellation is between the caller and the handler.
func (r *Router) Route(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
	h, pattern, ok := r.match(eventType)
	if !ok {
		r.callOnUnhandled(ctx, eventType)
		return nil, &UnhandledEventTypeError{EventType: eventType}
	}

	ctx = r.callOnMatch(ctx, eventType, pattern)
	r.callOnDispatch(ctx, eventType, pattern)

	start := time.Now()
	result, err := h.Handle(ctx, eventType, data)
	duration := time.Since(start)

	if err != nil {
		r.callOnFailure(ctx, eventType, pattern, err, duration)
		return nil, &HandlerError{EventType: eventType, Pattern: pattern, Err: err}
	}

	r.callOnSuccess(ctx, eventType, pattern, duration)
	return result, nil
}

// match resolves an event type to a registered handler. Exact patterns win
// over wildcards; among wildcard candidates the longest prefix wins.
func (r *Router) match(eventType string) (Handler, string, bool) {
	if h, ok := r.handlers[eventType]; ok {
		return h, eventType, true
	}

	var (
		best        Handler
		bestPattern string
		bestLen     = -1
	)
	for pattern, h := range r.handlers {
		prefix, ok := wildcardPrefix(pattern)
		if !ok || !matchesPrefix(eventType, prefix) {
			continue
		}
		// Two distinct prefixes of the same event type always differ in
		// length, so strict comparison picks a unique winner regardless of
		// map iteration order.
		if len(prefix) > bestLen {
			best, bestPattern, bestLen = h, pattern, len(prefix)
		}
	}
	if bestLen < 0 {
		return nil, "", false
	}
	return best, bestPattern, true
}

// wildcardPrefix extracts the prefix of a trailing-wildcard pattern.
// Patterns without a trailing ".*", or with nothing before it, are exact
// literals and report ok=false.
func wildcardPrefix(pattern string) (string, bool) {
	prefix, ok := strings.CutSuffix(pattern, wildcardSuffix)
	if !ok || prefix == "" {
		return "", false
	}
	return prefix, true
}

// matchesPrefix reports whether eventType equals prefix or extends it at a
// segment boundary, so "project" covers "project" and "project.created" but
// not "projects".
func matchesPrefix(eventType, prefix string) bool {
	if !strings.HasPrefix(eventType, prefix) {
		return false
	}
	return len(eventType) == len(prefix) || eventType[len(prefix)] == '.'
}
