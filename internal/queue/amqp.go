package queue

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/streadway/amqp"

	"github.com/lunchly/lunchly-backend/internal/logger"
)

const retryHeader = "x-retry-count"

// channel is the subset of *amqp.Channel the queue uses
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// AMQPQueue publishes and consumes through RabbitMQ, one durable queue per topic
type AMQPQueue struct {
	conn *amqp.Connection
	ch   channel
	log  *logger.Logger

	MaxRetries int
}

// DialAMQP connects to RabbitMQ and opens a channel
func DialAMQP(url string, log *logger.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	return &AMQPQueue{conn: conn, ch: ch, log: log, MaxRetries: defaultMaxRetries}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

// Publish sends the JSON-encoded payload as a persistent message
func (q *AMQPQueue) Publish(topic string, payload any) error {
	return q.publish(topic, payload, 0)
}

func (q *AMQPQueue) publish(topic string, payload any, retryCount int32) error {
	body, ok := payload.([]byte)
	if !ok {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "encode payload for %s", topic)
		}
	}

	if _, err := q.declare(topic); err != nil {
		return errors.Wrapf(err, "declare queue %s", topic)
	}

	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{retryHeader: retryCount},
			Body:         body,
		},
	)
}

// Subscribe consumes the topic's queue in a goroutine. A failed delivery is
// republished with an incremented retry count until MaxRetries is reached.
func (q *AMQPQueue) Subscribe(topic string, handler Handler) error {
	qu, err := q.declare(topic)
	if err != nil {
		return errors.Wrapf(err, "declare queue %s", topic)
	}

	msgs, err := q.ch.Consume(
		qu.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "register consumer")
	}

	go func() {
		for d := range msgs {
			q.deliver(topic, handler, d)
		}
		q.log.Infow("consumer stopped", "topic", topic)
	}()

	return nil
}

func (q *AMQPQueue) deliver(topic string, handler Handler, d amqp.Delivery) {
	err := handler(d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	retryCount := retryCountOf(d.Headers)
	q.log.Warnw("delivery failed", "topic", topic, "retry_count", retryCount, "error", err)

	if int(retryCount) < q.MaxRetries {
		if perr := q.publish(topic, d.Body, retryCount+1); perr != nil {
			q.log.Errorw("requeue failed", "topic", topic, "error", perr)
			_ = d.Nack(false, true)
			return
		}
	} else {
		q.log.Errorw("delivery permanently failed", "topic", topic, "body", string(d.Body))
	}
	_ = d.Ack(false)
}

func retryCountOf(headers amqp.Table) int32 {
	switch v := headers[retryHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	}
	return 0
}

// Close closes the channel and connection
func (q *AMQPQueue) Close() error {
	err := q.ch.Close()
	if q.conn != nil {
		if cerr := q.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

var _ Queue = (*AMQPQueue)(nil)
