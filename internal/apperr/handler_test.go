package apperr

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingHandler struct {
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

func TestHandle_SeverityDrivesLogLevel(t *testing.T) {
	capture := &capturingHandler{}
	h := NewHandler(slog.New(capture), false)
	ctx := context.Background()

	msg, retryable := h.Handle(ctx, NewValidationError("answers rejected"))
	assert.Equal(t, "Some fields are invalid. Please review the form and try again.", msg)
	assert.False(t, retryable)

	msg, retryable = h.Handle(ctx, NewDatabaseError(errors.New("connection refused")))
	assert.NotEmpty(t, msg)
	assert.True(t, retryable)

	require.Len(t, capture.records, 2)
	assert.Equal(t, slog.LevelWarn, capture.records[0].Level)
	assert.Equal(t, slog.LevelError, capture.records[1].Level)
}

func TestHandle_StorageErrorStaysQuietAndRetryable(t *testing.T) {
	capture := &capturingHandler{}
	h := NewHandler(slog.New(capture), false)

	_, retryable := h.Handle(context.Background(), NewStorageError(errors.New("redis down")))

	assert.True(t, retryable)
	require.Len(t, capture.records, 1)
	assert.Equal(t, slog.LevelWarn, capture.records[0].Level)
}

func TestHandle_NilError(t *testing.T) {
	capture := &capturingHandler{}
	h := NewHandler(slog.New(capture), false)

	msg, retryable := h.Handle(context.Background(), nil)

	assert.Empty(t, msg)
	assert.False(t, retryable)
	assert.Empty(t, capture.records)
}

func TestHandle_UnknownErrorFallsBackToGenericMessage(t *testing.T) {
	capture := &capturingHandler{}
	h := NewHandler(slog.New(capture), false)

	msg, retryable := h.Handle(context.Background(), errors.New("boom"))

	assert.Equal(t, "Something went wrong. Please try again later.", msg)
	assert.False(t, retryable)
	require.Len(t, capture.records, 1)
	assert.Equal(t, slog.LevelError, capture.records[0].Level)
}
