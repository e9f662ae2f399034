package eventrouter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type contextKey string

type RouterHooksSuite struct {
	suite.Suite
}

func TestRouterHooksSuite(t *testing.T) {
	suite.Run(t, new(RouterHooksSuite))
}

func (s *RouterHooksSuite) TestOnMatchReceivesTypeAndPattern() {
	var gotType, gotPattern string

	r := New(WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
		gotType = eventType
		gotPattern = pattern
		return ctx
	}))
	r.Register("project.*", &testHandler{})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().Equal("project.created", gotType)
	s.Assert().Equal("project.*", gotPattern)
}

func (s *RouterHooksSuite) TestOnMatchContextReachesHandler() {
	r := New(WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
		return context.WithValue(ctx, contextKey("pattern"), pattern)
	}))

	var handlerCtx context.Context
	r.RegisterFunc("project.*", func(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
		handlerCtx = ctx
		return nil, nil
	})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().Equal("project.*", handlerCtx.Value(contextKey("pattern")))
}

func (s *RouterHooksSuite) TestOnMatchContextsChain() {
	var finalCtx context.Context

	r := New(
		WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
			return context.WithValue(ctx, contextKey("first"), "one")
		}),
		WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
			return context.WithValue(ctx, contextKey("second"), "two")
		}),
		WithOnMatch(func(ctx context.Context, eventType, pattern string) context.Context {
			finalCtx = ctx
			return ctx
		}),
	)
	r.Register("project.created", &testHandler{})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().Equal("one", finalCtx.Value(contextKey("first")))
	s.Assert().Equal("two", finalCtx.Value(contextKey("second")))
}

func (s *RouterHooksSuite) TestOnDispatchRunsBeforeHandler() {
	var order []string

	r := New(WithOnDispatch(func(ctx context.Context, eventType, pattern string) {
		order = append(order, "dispatch")
	}))
	r.RegisterFunc("project.created", func(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
		order = append(order, "handler")
		return nil, nil
	})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Require().Len(order, 2)
	s.Assert().Equal([]string{"dispatch", "handler"}, order)
}

func (s *RouterHooksSuite) TestOnSuccessReceivesDuration() {
	var called bool
	var gotDuration time.Duration

	r := New(WithOnSuccess(func(ctx context.Context, eventType, pattern string, d time.Duration) {
		called = true
		gotDuration = d
	}))
	r.RegisterFunc("project.created", func(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
		time.Sleep(time.Millisecond)
		return nil, nil
	})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().True(called)
	s.Assert().Positive(gotDuration)
}

func (s *RouterHooksSuite) TestOnFailureReceivesOriginalError() {
	cause := errors.New("handler failed")
	var gotErr error
	var gotDuration time.Duration

	r := New(WithOnFailure(func(ctx context.Context, eventType, pattern string, err error, d time.Duration) {
		gotErr = err
		gotDuration = d
	}))
	r.Register("project.created", &testHandler{err: cause})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.Error(err)
	s.Assert().Equal(cause, gotErr)
	s.Assert().Positive(gotDuration)
}

func (s *RouterHooksSuite) TestOnFailureCannotSuppressError() {
	r := New(WithOnFailure(func(ctx context.Context, eventType, pattern string, err error, d time.Duration) {}))
	r.Register("project.created", &testHandler{err: errors.New("boom")})

	_, err := r.Route(context.Background(), "project.created", nil)

	var herr *HandlerError
	s.Assert().ErrorAs(err, &herr)
}

func (s *RouterHooksSuite) TestOnUnhandledObservesMissingPattern() {
	var gotType string

	r := New(WithOnUnhandled(func(ctx context.Context, eventType string) {
		gotType = eventType
	}))

	_, err := r.Route(context.Background(), "billing.invoice.paid", nil)

	s.Assert().Equal("billing.invoice.paid", gotType)

	var unhandled *UnhandledEventTypeError
	s.Assert().ErrorAs(err, &unhandled)
}

func (s *RouterHooksSuite) TestHooksRunInRegistrationOrder() {
	var calls []string

	r := New(
		WithOnSuccess(func(ctx context.Context, eventType, pattern string, d time.Duration) {
			calls = append(calls, "first")
		}),
		WithOnSuccess(func(ctx context.Context, eventType, pattern string, d time.Duration) {
			calls = append(calls, "second")
		}),
	)
	r.Register("project.created", &testHandler{})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().Equal([]string{"first", "second"}, calls)
}

func (s *RouterHooksSuite) TestNoHooksOnSuccessPath() {
	var unhandledCalled, failureCalled bool

	r := New(
		WithOnUnhandled(func(ctx context.Context, eventType string) {
			unhandledCalled = true
		}),
		WithOnFailure(func(ctx context.Context, eventType, pattern string, err error, d time.Duration) {
			failureCalled = true
		}),
	)
	r.Register("project.created", &testHandler{})

	_, err := r.Route(context.Background(), "project.created", nil)

	s.NoError(err)
	s.Assert().False(unhandledCalled)
	s.Assert().False(failureCalled)
}
