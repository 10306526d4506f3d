package queue

import (
	"fmt"
	"sync"

	"github.com/unclebandit/campaign-scheduler/internal/logx"
)

// CampaignEventsTopic carries campaign lifecycle events.
const CampaignEventsTopic = "campaign_events"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans each message out to the topic's subscribers in process.
// Every handler gets exactly one attempt.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	inflight sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// Publish hands the payload to every subscriber asynchronously.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.inflight.Add(1)
		go q.deliver(topic, handler, payload)
	}
	return nil
}

func (q *InMemoryQueue) deliver(topic string, handler func(payload any) error, payload any) {
	defer q.inflight.Done()
	if err := handler(payload); err != nil {
		logx.L().Warnw("queue_delivery_failed", "topic", topic, "err", err)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Drain blocks until every delivery started so far has returned.
func (q *InMemoryQueue) Drain() {
	q.inflight.Wait()
}
