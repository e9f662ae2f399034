package server

import "sync/atomic"

// Stats tracks dispatch outcomes at the boundary.
type Stats struct {
	received  atomic.Uint64
	succeeded atomic.Uint64
	unhandled atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	// Received counts every request to the events endpoint.
	Received uint64 `json:"received"`

	// Succeeded counts dispatches whose handler completed without error.
	Succeeded uint64 `json:"succeeded"`

	// Unhandled counts events whose type matched no registered pattern.
	Unhandled uint64 `json:"unhandled"`

	// Failed counts dispatches whose handler returned an error.
	Failed uint64 `json:"failed"`

	// Rejected counts requests refused before dispatch: unreadable,
	// oversized, or unresolvable envelopes.
	Rejected uint64 `json:"rejected"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Received:  s.received.Load(),
		Succeeded: s.succeeded.Load(),
		Unhandled: s.unhandled.Load(),
		Failed:    s.failed.Load(),
		Rejected:  s.rejected.Load(),
	}
}
