// Package pubsub is the in-process notification bus between the catalog's
// write path and its live subscribers. Events are ephemeral: delivered to
// the subscribers registered at publish time, then gone. There is no
// backlog and no replay for late subscribers.
package pubsub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one published notification.
type Event struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Subscription is one subscriber's view of a topic. Consume from C and call
// Unsubscribe when done; an abandoned subscription leaks its queue.
type Subscription struct {
	id     string
	topic  string
	ch     chan Event
	broker *Broker
	once   sync.Once
}

// C returns the subscriber's event channel. It is closed by Unsubscribe.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Unsubscribe removes the subscription from the broker and closes its
// channel. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.ch)
	})
}

// Broker fans events out to per-subscriber bounded queues. Publish never
// blocks: a subscriber whose queue is full misses the event, and neither
// the publisher nor other subscribers wait for it.
type Broker struct {
	mu      sync.RWMutex
	subs    map[string]map[string]*Subscription
	buffer  int
	dropped atomic.Int64
}

const defaultBuffer = 16

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{
		subs:   make(map[string]map[string]*Subscription),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber on topic. Events published before
// this call are not delivered.
func (b *Broker) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		id:     uuid.New().String(),
		topic:  topic,
		ch:     make(chan Event, b.buffer),
		broker: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]*Subscription)
	}
	b.subs[topic][sub.id] = sub
	return sub
}

// Publish hands the event to every current subscriber of topic and returns.
func (b *Broker) Publish(topic string, payload any) {
	event := Event{
		Topic:     topic,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[topic] {
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// SubscriberCount returns the number of live subscriptions on topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Dropped returns the total number of events discarded because a
// subscriber's queue was full.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if topicSubs, ok := b.subs[sub.topic]; ok {
		delete(topicSubs, sub.id)
		if len(topicSubs) == 0 {
			delete(b.subs, sub.topic)
		}
	}
}
