package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	COMMENT_CREATED_QUEUE   = "comment-created"
	COMMENT_UPDATED_QUEUE   = "comment-updated"
	COMMENT_DELETED_QUEUE   = "comment-deleted"
	USER_INFO_UPDATED_QUEUE = "user-info-updated"
)

var queues = []string{
	COMMENT_CREATED_QUEUE,
	COMMENT_UPDATED_QUEUE,
	COMMENT_DELETED_QUEUE,
	USER_INFO_UPDATED_QUEUE,
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New dials the broker, opens a channel and declares every queue the service uses.
func New(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (c *MQConn) Publish(ctx context.Context, queue string, body []byte) error {
	return c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (c *MQConn) PublishJSON(ctx context.Context, queue string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Publish(ctx, queue, body)
}

// Consume starts delivering messages from queue with manual acknowledgement.
func (c *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(queue, "", false, false, false, false, nil)
}

func (c *MQConn) Close() error {
	if err := c.ch.Close(); err != nil {
		_ = c.conn.Close()
		return err
	}
	return c.conn.Close()
}
