package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Response is the invocation envelope returned for every dispatch.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
	Result    any    `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

const (
	msgProcessed = "Event processed successfully"
	msgUnhandled = "Unhandled event type"
	msgFailed    = "Event handler failed"
	msgTimeout   = "Event handler timed out"
	msgRejected  = "Invalid event request"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, requestID string, result any) {
	writeJSON(w, http.StatusOK, Response{
		Success:   true,
		Message:   msgProcessed,
		RequestID: requestID,
		Result:    result,
	})
}

func writeFailure(w http.ResponseWriter, status int, requestID, message string, err error) {
	writeJSON(w, status, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID,
		Error:     err.Error(),
	})
}
