package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_PublishFansOut(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var got []string
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.UserID)
		return errors.New("boom")
	})
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.UserID)
		return nil
	})
	d.Subscribe(EventSessionRevoked, func(context.Context, Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserLoggedIn, UserID: "42"}))
	assert.Equal(t, []string{"first:42", "second:42"}, got)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "user_logged_in", entries[0].ContextMap()["event"])
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventRevokedReplay}))
}
