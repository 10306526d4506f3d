package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/unclebandit/campaign-scheduler/internal/logx"
)

// AMQPQueue maps each topic onto a durable RabbitMQ queue of the same name.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	return nil
}

// Publish sends payload as JSON. Single attempt: a failure is returned, not retried.
func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := q.declare(topic); err != nil {
		return err
	}
	err = q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         topic,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts consuming topic in the background. Handlers receive the
// raw JSON body as []byte.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	if err := q.declare(topic); err != nil {
		return err
	}
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			handleDelivery(d, handler)
		}
		logx.L().Infow("amqp_consumer_stopped", "topic", topic)
	}()
	return nil
}

// handleDelivery acks on success and drops the message on failure.
func handleDelivery(d amqp.Delivery, handler func(payload any) error) {
	if err := handler(d.Body); err != nil {
		logx.L().Warnw("amqp_delivery_failed", "queue", d.RoutingKey, "err", err)
		if nackErr := d.Nack(false, false); nackErr != nil {
			logx.L().Errorw("amqp_nack_failed", "err", nackErr)
		}
		return
	}
	if err := d.Ack(false); err != nil {
		logx.L().Errorw("amqp_ack_failed", "err", err)
	}
}

// NotifyClose reports when the broker connection goes away.
func (q *AMQPQueue) NotifyClose() <-chan *amqp.Error {
	return q.conn.NotifyClose(make(chan *amqp.Error, 1))
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}
