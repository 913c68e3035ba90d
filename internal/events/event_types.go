package events

import "time"

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventUserLoggedIn    EventType = "user_logged_in"
	EventAccessRefreshed EventType = "access_refreshed"
	EventSessionRevoked  EventType = "session_revoked"
	EventRevokedReplay   EventType = "revoked_token_replayed"
)

// Event carries a session event. Token material never travels in an event.
type Event struct {
	Type       EventType   `json:"type"`
	UserID     string      `json:"user_id,omitempty"`
	Email      string      `json:"email,omitempty"`
	TokenID    string      `json:"token_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

// LoggedInPayload payload.
type LoggedInPayload struct {
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// RefreshedPayload payload.
type RefreshedPayload struct {
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

// RevokedPayload payload.
type RevokedPayload struct {
	Until time.Time `json:"until"`
}
