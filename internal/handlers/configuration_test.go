package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfigurationHandler_Update(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	result, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`{"key": "dark_mode", "value": true}`))
	require.NoError(t, err)

	state, ok := result.(FlagState)
	require.True(t, ok, "result should be a FlagState, got %T", result)
	assert.Equal(t, "dark_mode", state.Key)
	assert.Equal(t, true, state.Value)
	assert.Equal(t, 1, state.Version)
}

func TestConfigurationHandler_UpdateBumpsVersion(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	_, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`{"key": "a", "value": 1}`))
	require.NoError(t, err)

	result, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`{"key": "b", "value": 2}`))
	require.NoError(t, err)

	state := result.(FlagState)
	assert.Equal(t, 2, state.Version)
	assert.Equal(t, 2, h.Version())
}

func TestConfigurationHandler_Delete(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	_, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`{"key": "dark_mode", "value": true}`))
	require.NoError(t, err)

	result, err := h.Handle(context.Background(), "configuration.deleted", json.RawMessage(`{"key": "dark_mode"}`))
	require.NoError(t, err)

	removal, ok := result.(FlagRemoval)
	require.True(t, ok, "result should be a FlagRemoval, got %T", result)
	assert.True(t, removal.Removed)
	assert.Equal(t, 2, removal.Version)
}

func TestConfigurationHandler_DeleteUnknownKeyIsIdempotent(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	result, err := h.Handle(context.Background(), "configuration.deleted", json.RawMessage(`{"key": "missing"}`))
	require.NoError(t, err)

	removal := result.(FlagRemoval)
	assert.False(t, removal.Removed)
	assert.Equal(t, 0, removal.Version, "ineffective delete should not bump the version")
}

func TestConfigurationHandler_Validation(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	_, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`{"value": true}`))
	assert.Error(t, err, "missing key should fail validation")

	_, err = h.Handle(context.Background(), "configuration.deleted", json.RawMessage(`{}`))
	assert.Error(t, err, "missing key should fail validation")
}

func TestConfigurationHandler_RejectsMalformedPayload(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	_, err := h.Handle(context.Background(), "configuration.updated", json.RawMessage(`"not an object"`))
	assert.Error(t, err)
}

func TestConfigurationHandler_IgnoresUnknownSuffix(t *testing.T) {
	h := NewConfigurationHandler(testLogger(), 0)

	result, err := h.Handle(context.Background(), "configuration.reloaded", nil)
	require.NoError(t, err)

	ack, ok := result.(Ack)
	require.True(t, ok, "result should be an Ack, got %T", result)
	assert.Equal(t, "ignored", ack.Status)
	assert.Equal(t, "configuration.reloaded", ack.EventType)
}
