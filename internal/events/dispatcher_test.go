package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventLeadReceived, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventLeadReceived, LeadID: "1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].LeadID)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventLeadSynced, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventLeadSynced, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventLeadSynced})
	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestDispatcher_UnsubscribedTypeIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventLeadReceived, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventContactReceived})
	require.NoError(t, err)
	assert.False(t, called)
}
