package envelope

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// EventTypeHeader carries an explicit event type on the invocation request.
// When present it overrides whatever shape the body has.
const EventTypeHeader = "X-Event-Type"

// emptyObject is the payload substituted when a request carries no data.
var emptyObject = json.RawMessage(`{}`)

// DefaultFormats returns the built-in formats in resolution order: the
// header override first, then the plain {type, data} body shape, then the
// bridge-delivery shape.
func DefaultFormats() []Format {
	return []Format{
		HeaderFormat(),
		BodyFormat(),
		EventBridgeFormat(),
	}
}

// HeaderFormat resolves requests that name their event type in the
// X-Event-Type header. The entire body becomes the payload; an empty body
// becomes an empty object. A non-empty body must be valid JSON.
func HeaderFormat() Format {
	return FormatFunc("header", HasHeader(EventTypeHeader), func(req Request) (Event, error) {
		eventType := req.Header.Get(EventTypeHeader)
		if eventType == "" {
			return Event{}, errors.New("empty " + EventTypeHeader + " header")
		}
		data := emptyObject
		if len(req.Body) > 0 {
			if !gjson.ValidBytes(req.Body) {
				return Event{}, ErrInvalidJSON
			}
			data = json.RawMessage(req.Body)
		}
		return Event{Type: eventType, Data: data}, nil
	})
}

// BodyFormat resolves requests whose body is a {"type": ..., "data": ...}
// object. A missing or null data field becomes an empty object; an empty
// type string is a parse error.
func BodyFormat() Format {
	return FormatFunc("body", HasFields("type"), func(req Request) (Event, error) {
		var env struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(req.Body, &env); err != nil {
			return Event{}, err
		}
		if env.Type == "" {
			return Event{}, errors.New("empty type field")
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			env.Data = emptyObject
		}
		return Event{Type: env.Type, Data: env.Data}, nil
	})
}

// EventBridgeFormat resolves bridge-delivery bodies carrying "detail-type"
// and "detail" fields. The detail-type becomes the event type and the raw
// detail value the payload.
func EventBridgeFormat() Format {
	return FormatFunc("eventbridge", HasFields("detail-type", "detail"), func(req Request) (Event, error) {
		var env struct {
			DetailType string          `json:"detail-type"`
			Detail     json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(req.Body, &env); err != nil {
			return Event{}, err
		}
		if env.DetailType == "" {
			return Event{}, errors.New("empty detail-type field")
		}
		if len(env.Detail) == 0 || string(env.Detail) == "null" {
			env.Detail = emptyObject
		}
		return Event{Type: env.DetailType, Data: env.Detail}, nil
	})
}
