// Package progress routes run-completion events from evaluators to
// interested observers.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Event reports the completion of one independent evaluation run.
type Event struct {
	EvaluationID string    // which evaluation the run belongs to
	Epsilon      float64   // exploration rate being evaluated
	Run          int       // run index within the evaluation
	TotalReward  float64   // total reward achieved by the run
	Timestamp    time.Time // when the run finished
}

// Publisher is the evaluator-facing side of the broker.
type Publisher interface {
	Publish(e Event) error
}

// Broker fans events out to subscribers.
// subscribers maps observer IDs to the channels they receive events on.
type Broker struct {
	subscribers map[string]chan<- Event
	mu          sync.RWMutex
}

// NewBroker creates a new progress broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]chan<- Event),
	}
}

// Publish delivers e to every subscriber. Sends are non-blocking: a
// subscriber whose channel is full causes an error rather than stalling the
// evaluation that published the event.
func (b *Broker) Publish(e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			return fmt.Errorf("subscriber %s's channel is full", id)
		}
	}
	return nil
}

// Subscribe registers an observer to receive events.
func (b *Broker) Subscribe(id string, ch chan<- Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; exists {
		return fmt.Errorf("observer %s is already subscribed", id)
	}

	b.subscribers[id] = ch
	return nil
}

// Unsubscribe removes an observer's subscription.
func (b *Broker) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return fmt.Errorf("observer %s is not subscribed", id)
	}

	delete(b.subscribers, id)
	return nil
}

// Reset drops all subscriptions.
func (b *Broker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]chan<- Event)
}
