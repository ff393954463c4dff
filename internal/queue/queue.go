package queue

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lunchly/lunchly-backend/internal/logger"
)

// TopicReservationConfirmations carries ReservationCreated events.
const TopicReservationConfirmations = "reservation_confirmations"

const defaultMaxRetries = 3

// Handler processes one JSON-encoded payload. A non-nil error asks for a retry.
type Handler func(body []byte) error

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue delivers to in-process subscribers with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	log      *logger.Logger

	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(log *logger.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]Handler),
		log:        log,
		MaxRetries: defaultMaxRetries,
		Backoff:    500 * time.Millisecond,
	}
}

// job wraps a message body with retry info
type job struct {
	Topic      string
	Body       []byte
	RetryCount int
}

// Publish encodes the payload and hands it to every subscriber of the topic
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encode payload for %s", topic)
	}

	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return errors.Newf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, job{Topic: topic, Body: body})
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler Handler, j job) {
	for {
		err := handler(j.Body)
		if err == nil {
			q.log.Debugw("job processed", "topic", j.Topic, "attempts", j.RetryCount+1)
			return
		}

		j.RetryCount++
		q.log.Warnw("job failed", "topic", j.Topic, "attempt", j.RetryCount, "max_retries", q.MaxRetries, "error", err)

		if j.RetryCount > q.MaxRetries {
			q.log.Errorw("job permanently failed", "topic", j.Topic, "body", string(j.Body))
			return
		}

		time.Sleep(time.Duration(j.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
