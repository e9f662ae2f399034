package eventrouter

// UnhandledEventTypeError is returned by Route when no registered pattern,
// exact or wildcard, matches the event type.
type UnhandledEventTypeError struct {
	// EventType is the event type that failed to resolve.
	EventType string
}

func (e *UnhandledEventTypeError) Error() string {
	return "no handler for event type: " + e.EventType
}

// HandlerError is returned by Route when the resolved handler fails. It
// records which event type and pattern were involved and wraps the
// handler's error for errors.Is/errors.As inspection.
type HandlerError struct {
	// EventType is the event type that was dispatched.
	EventType string

	// Pattern is the registered pattern that matched EventType.
	Pattern string

	// Err is the error returned by the handler.
	Err error
}

func (e *HandlerError) Error() string {
	return "handler for " + e.Pattern + " failed on " + e.EventType + ": " + e.Err.Error()
}

// Unwrap returns the handler's original error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
