package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/task-service/internal/events"
)

func TestAuditWorker_LogsSessionEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	StartAuditWorker(dispatcher, zap.New(core))
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventUserLoggedIn, UserID: "42", OccurredAt: at}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventRevokedReplay, TokenID: "jti-1", OccurredAt: at}))

	entries := logs.FilterMessage("session event").All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, "user_logged_in", entries[0].ContextMap()["event"])
	assert.Equal(t, "42", entries[0].ContextMap()["user_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "jti-1", entries[1].ContextMap()["jti"])
	assert.NotContains(t, entries[1].ContextMap(), "user_id")
}

func TestAuditWorker_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop()) })
}
