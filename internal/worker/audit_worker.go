package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/events"
)

// StartAuditWorker subscribes a structured audit logger to every session event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	handler := func(_ context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event", string(event.Type)),
			zap.Time("occurred_at", event.OccurredAt),
		}
		if event.UserID != "" {
			fields = append(fields, zap.String("user_id", event.UserID))
		}
		if event.TokenID != "" {
			fields = append(fields, zap.String("jti", event.TokenID))
		}
		if event.Payload != nil {
			fields = append(fields, zap.Any("payload", event.Payload))
		}

		if event.Type == events.EventRevokedReplay {
			audit.Warn("session event", fields...)
			return nil
		}
		audit.Info("session event", fields...)
		return nil
	}

	for _, t := range []events.EventType{
		events.EventUserLoggedIn,
		events.EventAccessRefreshed,
		events.EventSessionRevoked,
		events.EventRevokedReplay,
	} {
		dispatcher.Subscribe(t, handler)
	}
}
