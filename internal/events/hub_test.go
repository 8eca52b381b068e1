package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) any {
	t.Helper()
	select {
	case v := <-sub.C:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(EventNewOrder)
	defer sub.Close()

	hub.Publish(EventNewOrder, "first")
	hub.Publish(EventNewOrder, "second")

	assert.Equal(t, "first", receive(t, sub))
	assert.Equal(t, "second", receive(t, sub))
}

func TestPublishIgnoresOtherEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("order-updated")
	defer sub.Close()

	hub.Publish(EventNewOrder, "nope")

	select {
	case v := <-sub.C:
		t.Fatalf("unexpected delivery: %v", v)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(EventNewOrder)
	sub.Close()

	hub.Publish(EventNewOrder, "late")

	_, open := <-sub.C
	assert.False(t, open, "channel must be closed after unsubscribe")

	// double Close is safe
	sub.Close()
}

func TestHubCloseClosesAllSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe(EventNewOrder)
	b := hub.Subscribe("other")

	hub.Close()

	_, open := <-a.C
	require.False(t, open)
	_, open = <-b.C
	require.False(t, open)

	// publishing and subscribing after Close must not panic
	hub.Publish(EventNewOrder, "x")
	sub := hub.Subscribe(EventNewOrder)
	_, open = <-sub.C
	assert.False(t, open)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(EventNewOrder)
	defer sub.Close()

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish(EventNewOrder, i)
	}

	assert.Len(t, sub.C, subscriberBuffer)
}
