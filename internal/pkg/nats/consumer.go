package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// MessageHandler is a function that processes NATS messages
type MessageHandler func(message []byte) error

// Consumer is a queue-group subscription on a core NATS subject. Delivery is
// at-most-once, which suits position samples: a lost one is superseded by
// the next.
type Consumer struct {
	subscription *nats.Subscription
}

// NewConsumer subscribes handler to subject within queueGroup
func NewConsumer(client *Client, subject, queueGroup string, handler MessageHandler) (*Consumer, error) {
	sub, err := client.GetConn().QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			logger.Warn("Error processing message",
				logger.String("subject", subject),
				logger.String("queue_group", queueGroup),
				logger.Err(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject: %w", err)
	}

	return &Consumer{subscription: sub}, nil
}

// Stop unsubscribes the consumer
func (c *Consumer) Stop() error {
	return c.subscription.Unsubscribe()
}
