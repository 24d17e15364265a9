package nsq

import (
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// MessageHandler is a function that processes NSQ messages
type MessageHandler func(message []byte) error

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
}

// NewConsumer creates a new NSQ consumer for a topic/channel. Handler errors
// are logged and the message finished: malformed samples are never requeued.
func NewConsumer(topic, channel string, handler MessageHandler) (*Consumer, error) {
	consumer, err := nsq.NewConsumer(topic, channel, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLogger(nil, nsq.LogLevelError)

	consumer.AddHandler(nsq.HandlerFunc(func(message *nsq.Message) error {
		if err := handler(message.Body); err != nil {
			logger.Warn("Error processing message",
				logger.String("topic", topic),
				logger.String("channel", channel),
				logger.Err(err))
		}
		return nil
	}))

	return &Consumer{consumer: consumer}, nil
}

// Connect attaches the consumer to nsqd directly, or through lookupd when set
func (c *Consumer) Connect(nsqdAddress, lookupdAddress string) error {
	if lookupdAddress != "" {
		if err := c.consumer.ConnectToNSQLookupd(lookupdAddress); err != nil {
			return fmt.Errorf("failed to connect to NSQ lookupd at %s: %w", lookupdAddress, err)
		}
		return nil
	}
	if err := c.consumer.ConnectToNSQD(nsqdAddress); err != nil {
		return fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}
	return nil
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
