// Package envelope resolves inbound invocation requests into routable
// events. A request carries HTTP headers and a raw body; the resolver
// detects which envelope format the request uses and extracts the event
// type and payload from it.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownFormat is returned when no registered format matches a request.
var ErrUnknownFormat = errors.New("unknown envelope format")

// Request is the inbound invocation as the resolver sees it.
type Request struct {
	// Header holds the invocation headers. May be nil.
	Header http.Header

	// Body is the raw request body. May be empty.
	Body []byte
}

// Event is a resolved, routable event.
type Event struct {
	// Type is the dot-delimited event type, e.g. "project.created".
	Type string

	// Data is the event payload as raw JSON, never empty once resolved;
	// formats substitute an empty object when the request carried none.
	Data json.RawMessage

	// Format names the envelope format that produced this event.
	Format string
}

// Format parses one envelope shape out of a request.
//
// Formats are registered with a Resolver and matched using their
// Discriminator before Parse is called, so detection stays cheap and Parse
// can assume the general shape is present.
type Format interface {
	// Name returns the format identifier for logging and the Event.Format
	// field.
	Name() string

	// Discriminator returns the predicate that detects this format.
	Discriminator() Discriminator

	// Parse extracts the event. A request that passed the discriminator
	// but is malformed in detail yields an error, not a fallthrough.
	Parse(req Request) (Event, error)
}

// FormatFunc creates a Format from a name, discriminator, and parse
// function. Use for formats that don't need a struct:
//
//	envelope.FormatFunc("custom", envelope.HasFields("event"), func(req envelope.Request) (envelope.Event, error) {
//	    // parse logic
//	})
func FormatFunc(name string, disc Discriminator, parse func(Request) (Event, error)) Format {
	return &formatFunc{name: name, disc: disc, parse: parse}
}

type formatFunc struct {
	name  string
	disc  Discriminator
	parse func(Request) (Event, error)
}

func (f *formatFunc) Name() string                     { return f.name }
func (f *formatFunc) Discriminator() Discriminator     { return f.disc }
func (f *formatFunc) Parse(req Request) (Event, error) { return f.parse(req) }

// Resolver matches requests against an ordered list of formats.
//
// Order is semantic: the first format whose discriminator matches commits
// the request to that format's Parse, and a parse failure fails resolution
// rather than falling through to later formats. Register overriding formats
// (header-based ones) before body-shape formats.
//
// Resolver is safe for concurrent use once configuration is complete.
type Resolver struct {
	formats []Format
}

// NewResolver creates a resolver with the given formats, tried in order.
func NewResolver(formats ...Format) *Resolver {
	return &Resolver{formats: formats}
}

// Add appends a format to the resolution order.
func (r *Resolver) Add(f Format) {
	r.formats = append(r.formats, f)
}

// Resolve detects the request's envelope format and parses the event out
// of it. Returns ErrUnknownFormat when no discriminator matches.
func (r *Resolver) Resolve(req Request) (Event, error) {
	v := NewView(req)
	for _, f := range r.formats {
		if !f.Discriminator().Match(v) {
			continue
		}
		ev, err := f.Parse(req)
		if err != nil {
			return Event{}, fmt.Errorf("parse %s envelope: %w", f.Name(), err)
		}
		ev.Format = f.Name()
		return ev, nil
	}
	return Event{}, ErrUnknownFormat
}
