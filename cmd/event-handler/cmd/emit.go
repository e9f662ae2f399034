package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/envelope"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/server"
)

// emitTimeout bounds a single emit round trip.
const emitTimeout = 30 * time.Second

var (
	emitAddr      string
	emitType      string
	emitData      string
	emitRequestID string
	emitUseHeader bool
)

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Send an event to a running event-handler",
	Long: "Send a single event to a running event-handler service over HTTP and\n" +
		"print the response envelope.",
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().StringVar(&emitAddr, "addr", "http://127.0.0.1:8080", "base URL of the event-handler service")
	emitCmd.Flags().StringVar(&emitType, "type", "", "event type, e.g. project.created")
	emitCmd.Flags().StringVar(&emitData, "data", "{}", "event payload as a JSON document")
	emitCmd.Flags().StringVar(&emitRequestID, "request-id", "", "request ID to attach (generated by the service when empty)")
	emitCmd.Flags().BoolVar(&emitUseHeader, "header", false, "send the event type in the "+envelope.EventTypeHeader+" header instead of the body")
	_ = emitCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(emitCmd)
}

func runEmit(cmd *cobra.Command, _ []string) error {
	body, err := buildEventBody(emitType, emitData, emitUseHeader)
	if err != nil {
		return fmt.Errorf("event-handler emit: %w", err)
	}

	url := strings.TrimRight(emitAddr, "/") + "/events"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("event-handler emit: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if emitUseHeader {
		req.Header.Set(envelope.EventTypeHeader, emitType)
	}
	if emitRequestID != "" {
		req.Header.Set(server.RequestIDHeader, emitRequestID)
	}

	client := &http.Client{Timeout: emitTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("event-handler emit: %w", err)
	}
	defer resp.Body.Close()

	var out server.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("event-handler emit: parse response: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Success:    %t\n", out.Success)
	fmt.Fprintf(w, "Message:    %s\n", out.Message)
	fmt.Fprintf(w, "Request ID: %s\n", out.RequestID)
	if out.Error != "" {
		fmt.Fprintf(w, "Error:      %s\n", out.Error)
	}
	if out.Result != nil {
		pretty, err := json.MarshalIndent(out.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("event-handler emit: format result: %w", err)
		}
		fmt.Fprintf(w, "Result:\n%s\n", pretty)
	}

	if !out.Success {
		return fmt.Errorf("event-handler emit: %s", out.Message)
	}
	return nil
}

// buildEventBody assembles the request body for an event. In body mode the
// type and payload travel in a JSON envelope; in header mode the payload is
// the body itself and the type travels in the event type header.
func buildEventBody(eventType, data string, useHeader bool) ([]byte, error) {
	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("payload is not valid JSON: %q", data)
	}
	if useHeader {
		return []byte(data), nil
	}
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{Type: eventType, Data: json.RawMessage(data)})
}
