// Package amqp connects the worker to RabbitMQ: it consumes run triggers
// and publishes run-completed events.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,
		c.queueName, // routing key mirrors the queue name on a direct exchange
		c.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// PublishRunTrigger enqueues a manual run request.
func (c *Client) PublishRunTrigger(ctx context.Context, msg *RunTriggerMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal trigger: %w", err)
	}
	if err := c.publish(ctx, c.queueName, body); err != nil {
		return fmt.Errorf("publish trigger: %w", err)
	}
	slog.InfoContext(ctx, "Published run trigger",
		"year", msg.Year,
		"month", msg.Month,
		"requested_by", msg.RequestedBy)
	return nil
}

// PublishRunCompleted emits a run-completed event on its own routing key so
// listeners can subscribe without draining the trigger queue.
func (c *Client) PublishRunCompleted(ctx context.Context, msg *RunCompletedMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}
	if err := c.publish(ctx, c.queueName+".completed", body); err != nil {
		return fmt.Errorf("publish completion: %w", err)
	}
	slog.InfoContext(ctx, "Published run completed event",
		"run_id", msg.RunID,
		"outcome", msg.Outcome)
	return nil
}

// ConsumeTriggers delivers run triggers to handler with manual acks. A
// handler error nacks with requeue; a malformed payload is dropped.
func (c *Client) ConsumeTriggers(ctx context.Context, handler func(context.Context, *RunTriggerMessage) error) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Consuming run triggers", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping trigger consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := RunTriggerMessageFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal trigger", "error", err)
				delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle trigger",
					"error", err,
					"year", msg.Year,
					"month", msg.Month)
				delivery.Nack(false, true)
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
