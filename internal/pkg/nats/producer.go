package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// Producer publishes JSON messages to NATS subjects
type Producer struct {
	conn *nats.Conn
}

// NewProducer creates a producer on a fresh connection
func NewProducer(address string) (*Producer, error) {
	conn, err := nats.Connect(address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}
	return &Producer{conn: conn}, nil
}

// NewProducerFromClient creates a producer sharing the client's connection
func NewProducerFromClient(client *Client) *Producer {
	return &Producer{conn: client.GetConn()}
}

// Publish sends a message to the specified subject
func (p *Producer) Publish(subject string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.conn.Publish(subject, msgBytes); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("Published message", logger.String("subject", subject))
	return nil
}

// Stop flushes pending messages; the connection itself is owned by Client
func (p *Producer) Stop() {
	_ = p.conn.Flush()
}
