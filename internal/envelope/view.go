package envelope

import (
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a request body is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON body")

// View provides cheap field access over a request for discriminator
// matching. Body paths use gjson syntax; header names are canonical HTTP
// header names.
type View interface {
	// HasField returns true if the path exists in the body JSON.
	HasField(path string) bool

	// GetString returns the string value at path, or false if not found
	// or not a string.
	GetString(path string) (string, bool)

	// GetBytes returns the raw bytes at path, or false if not found.
	// For strings this includes the surrounding quotes.
	GetBytes(path string) ([]byte, bool)

	// Header returns the header value, or false when the header is absent
	// or empty.
	Header(name string) (string, bool)
}

// NewView builds a View over a request. Field queries on an empty or
// invalid-JSON body report absent; header queries are unaffected.
func NewView(req Request) View {
	return requestView{
		header: req.Header,
		body:   req.Body,
		valid:  len(req.Body) > 0 && gjson.ValidBytes(req.Body),
	}
}

type requestView struct {
	header http.Header
	body   []byte
	valid  bool
}

func (v requestView) HasField(path string) bool {
	if !v.valid {
		return false
	}
	return gjson.GetBytes(v.body, path).Exists()
}

func (v requestView) GetString(path string) (string, bool) {
	if !v.valid {
		return "", false
	}
	r := gjson.GetBytes(v.body, path)
	if !r.Exists() {
		return "", false
	}
	if r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

func (v requestView) GetBytes(path string) ([]byte, bool) {
	if !v.valid {
		return nil, false
	}
	r := gjson.GetBytes(v.body, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

func (v requestView) Header(name string) (string, bool) {
	if v.header == nil {
		return "", false
	}
	val := v.header.Get(name)
	if val == "" {
		return "", false
	}
	return val, true
}
