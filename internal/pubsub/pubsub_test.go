package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event := <-sub.C():
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	broker := NewBroker(4)

	first := broker.Subscribe("book_added")
	second := broker.Subscribe("book_added")
	defer first.Unsubscribe()
	defer second.Unsubscribe()

	broker.Publish("book_added", "payload")

	assert.Equal(t, "payload", receiveOne(t, first).Payload)
	assert.Equal(t, "payload", receiveOne(t, second).Payload)
}

func TestBroker_NoBacklogForLateSubscribers(t *testing.T) {
	broker := NewBroker(4)

	broker.Publish("book_added", "early")

	sub := broker.Subscribe("book_added")
	defer sub.Unsubscribe()

	select {
	case event := <-sub.C():
		t.Fatalf("late subscriber received event: %v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_TopicsAreIndependent(t *testing.T) {
	broker := NewBroker(4)

	sub := broker.Subscribe("book_added")
	defer sub.Unsubscribe()

	broker.Publish("other_topic", "payload")

	select {
	case event := <-sub.C():
		t.Fatalf("received event from wrong topic: %v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	broker := NewBroker(1)

	slow := broker.Subscribe("book_added")
	defer slow.Unsubscribe()
	fast := broker.Subscribe("book_added")
	defer fast.Unsubscribe()

	// Fill the slow subscriber's queue, then publish again. The second
	// publish must return and still reach the fast subscriber.
	broker.Publish("book_added", 1)
	broker.Publish("book_added", 2)

	assert.Equal(t, 1, receiveOne(t, fast).Payload)
	assert.Equal(t, 2, receiveOne(t, fast).Payload)
	assert.Equal(t, int64(1), broker.Dropped())
}

func TestSubscription_Unsubscribe(t *testing.T) {
	broker := NewBroker(4)

	sub := broker.Subscribe("book_added")
	require.Equal(t, 1, broker.SubscriberCount("book_added"))

	sub.Unsubscribe()
	assert.Equal(t, 0, broker.SubscriberCount("book_added"))

	// Channel is closed; receiving must not block.
	_, ok := <-sub.C()
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic.
	broker.Publish("book_added", "payload")

	// Unsubscribe is idempotent.
	sub.Unsubscribe()
}

func TestBroker_EventCarriesTopicAndTimestamp(t *testing.T) {
	broker := NewBroker(4)

	sub := broker.Subscribe("book_added")
	defer sub.Unsubscribe()

	before := time.Now()
	broker.Publish("book_added", "payload")

	event := receiveOne(t, sub)
	assert.Equal(t, "book_added", event.Topic)
	assert.False(t, event.Timestamp.Before(before))
}
