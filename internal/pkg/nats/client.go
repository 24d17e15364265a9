package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// Client owns the NATS connection shared by the producer and consumers
type Client struct {
	conn *nats.Conn
}

// NewClient connects to NATS with reconnect handling suited to a long-lived service
func NewClient(url, name string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", logger.Err(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// IsConnected reports the connection status for health checks
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close drains subscriptions and closes the NATS connection
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
