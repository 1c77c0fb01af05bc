package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandle_LogsChange(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := &auditHandler{logger: zap.New(core)}

	err := h.handle(context.Background(), events.CloudWatchEvent{
		ID:     "cw-1",
		Time:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Detail: json.RawMessage(`{"documentId":"abc123","existedBefore":false,"existedAfter":true,"collection":"orders"}`),
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("order change").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc123", fields["documentId"])
	assert.Equal(t, "created", fields["kind"])
	assert.Equal(t, "orders", fields["collection"])
}

func TestHandle_DeleteIsUpdated(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := &auditHandler{logger: zap.New(core)}

	err := h.handle(context.Background(), events.CloudWatchEvent{
		Detail: json.RawMessage(`{"documentId":"abc123","existedBefore":true,"existedAfter":false}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "updated", logs.All()[0].ContextMap()["kind"])
}

func TestHandle_Unreadable(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := &auditHandler{logger: zap.New(core)}

	err := h.handle(context.Background(), events.CloudWatchEvent{ID: "cw-9", Detail: json.RawMessage(`[]`)})
	assert.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}
