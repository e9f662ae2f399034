package eventrouter

import (
	"context"
	"time"
)

// OnMatchFunc runs after pattern resolution and before dispatch. The
// returned context is passed to the handler and to subsequent hooks, so an
// OnMatchFunc can enrich the context with routing metadata.
type OnMatchFunc func(ctx context.Context, eventType, pattern string) context.Context

// OnDispatchFunc runs immediately before the handler executes.
type OnDispatchFunc func(ctx context.Context, eventType, pattern string)

// OnSuccessFunc runs after a handler returns without error. The duration
// covers the handler call only, not pattern resolution.
type OnSuccessFunc func(ctx context.Context, eventType, pattern string, duration time.Duration)

// OnFailureFunc runs after a handler returns an error. The err argument is
// the handler's original error, before the router wraps it.
type OnFailureFunc func(ctx context.Context, eventType, pattern string, err error, duration time.Duration)

// OnUnhandledFunc runs when no registered pattern matches the event type.
type OnUnhandledFunc func(ctx context.Context, eventType string)

// hooks collects the observer callbacks configured on a Router. Hooks
// observe the dispatch flow; apart from OnMatch threading a context they
// cannot alter routing outcomes.
type hooks struct {
	onMatch     []OnMatchFunc
	onDispatch  []OnDispatchFunc
	onSuccess   []OnSuccessFunc
	onFailure   []OnFailureFunc
	onUnhandled []OnUnhandledFunc
}

// Option configures a Router during construction.
type Option func(*Router)

// WithOnMatch registers a hook called after an event type resolves to a
// pattern. Hooks run in registration order, each receiving the context
// returned by the previous one.
//
// Example:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
//	        return context.WithValue(ctx, patternKey{}, pattern)
//	    }),
//	)
func WithOnMatch(fn OnMatchFunc) Option {
	return func(r *Router) {
		r.hooks.onMatch = append(r.hooks.onMatch, fn)
	}
}

// WithOnDispatch registers a hook called just before a handler runs.
//
// Example:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnDispatch(func(ctx context.Context, eventType, pattern string) {
//	        logger.Debug("dispatching", "event_type", eventType, "pattern", pattern)
//	    }),
//	)
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Router) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnSuccess registers a hook called after a handler succeeds.
//
// Example:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnSuccess(func(ctx context.Context, eventType, pattern string, d time.Duration) {
//	        logger.Info("handled", "event_type", eventType, "duration", d)
//	    }),
//	)
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(r *Router) {
		r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	}
}

// WithOnFailure registers a hook called after a handler fails. The router
// still returns a *HandlerError to the caller; the hook cannot suppress it.
//
// Example:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnFailure(func(ctx context.Context, eventType, pattern string, err error, d time.Duration) {
//	        logger.Error("handler failed", "event_type", eventType, "error", err)
//	    }),
//	)
func WithOnFailure(fn OnFailureFunc) Option {
	return func(r *Router) {
		r.hooks.onFailure = append(r.hooks.onFailure, fn)
	}
}

// WithOnUnhandled registers a hook called when no pattern matches. The
// router still returns an *UnhandledEventTypeError to the caller.
//
// Example:
//
//	r := eventrouter.New(
//	    eventrouter.WithOnUnhandled(func(ctx context.Context, eventType string) {
//	        logger.Warn("unhandled event", "event_type", eventType)
//	    }),
//	)
func WithOnUnhandled(fn OnUnhandledFunc) Option {
	return func(r *Router) {
		r.hooks.onUnhandled = append(r.hooks.onUnhandled, fn)
	}
}

func (r *Router) callOnMatch(ctx context.Context, eventType, pattern string) context.Context {
	for _, fn := range r.hooks.onMatch {
		ctx = fn(ctx, eventType, pattern)
	}
	return ctx
}

func (r *Router) callOnDispatch(ctx context.Context, eventType, pattern string) {
	for _, fn := range r.hooks.onDispatch {
		fn(ctx, eventType, pattern)
	}
}

func (r *Router) callOnSuccess(ctx context.Context, eventType, pattern string, duration time.Duration) {
	for _, fn := range r.hooks.onSuccess {
		fn(ctx, eventType, pattern, duration)
	}
}

func (r *Router) callOnFailure(ctx context.Context, eventType, pattern string, err error, duration time.Duration) {
	for _, fn := range r.hooks.onFailure {
		fn(ctx, eventType, pattern, err, duration)
	}
}

func (r *Router) callOnUnhandled(ctx context.Context, eventType string) {
	for _, fn := range r.hooks.onUnhandled {
		fn(ctx, eventType)
	}
}
