package nsq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer("127.0.0.1:1")

	assert.Error(t, err)
	assert.Nil(t, producer)
	assert.Contains(t, err.Error(), "failed to ping NSQ daemon")
}

func TestNewConsumer(t *testing.T) {
	t.Run("valid topic and channel", func(t *testing.T) {
		consumer, err := NewConsumer("position.update", "vigilante", func([]byte) error { return nil })
		require.NoError(t, err)

		err = consumer.Connect("127.0.0.1:1", "")
		assert.Error(t, err)
		consumer.Stop()
	})

	t.Run("invalid topic name", func(t *testing.T) {
		consumer, err := NewConsumer("bad topic!", "vigilante", func([]byte) error { return nil })
		assert.Error(t, err)
		assert.Nil(t, consumer)
	})
}
