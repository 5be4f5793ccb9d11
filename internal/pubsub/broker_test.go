package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := broker.Subscribe(ctx)
	broker.Publish(CompletedEvent, "issue updated")

	select {
	case event := <-sub:
		assert.Equal(t, CompletedEvent, event.Type)
		assert.Equal(t, "issue updated", event.Payload)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerMultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subA := broker.Subscribe(ctx)
	subB := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(CompletedEvent, 42)

	for _, sub := range []<-chan Event[int]{subA, subB} {
		select {
		case event := <-sub:
			assert.Equal(t, 42, event.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBrokerSubscribeAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	broker.Close()

	sub := broker.Subscribe(context.Background())

	_, ok := <-sub
	assert.False(t, ok, "channel from a closed broker should be closed")
}

func TestBrokerCancelledContextRemovesSubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()

	assert.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBrokerFullBufferDropsEvent(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := broker.Subscribe(ctx)
	broker.Publish(CompletedEvent, 1)
	broker.Publish(CompletedEvent, 2) // dropped, buffer is full

	event := <-sub
	assert.Equal(t, 1, event.Payload)

	select {
	case extra := <-sub:
		t.Fatalf("expected no second event, got %v", extra.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerCloseIsIdempotent(t *testing.T) {
	broker := NewBroker[string]()
	broker.Close()
	assert.NotPanics(t, func() { broker.Close() })
	assert.NotPanics(t, func() { broker.Publish(CompletedEvent, "late") })
}
