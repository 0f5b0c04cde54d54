package broker

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerFlushesSingleMessages(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"kafka-1:9092", "kafka-2:9092"}, Topic: "orders.events"})
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, "orders.events", p.writer.Topic)
	assert.NotNil(t, p.writer.Addr)
	assert.Equal(t, 1, p.writer.BatchSize)
	assert.LessOrEqual(t, p.writer.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestPublishRejectsUnencodableEvent(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"127.0.0.1:1"}, Topic: "orders.events"})
	t.Cleanup(func() { _ = p.Close() })

	err := p.Publish(context.Background(), "1", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal event")
}

func TestNopProducer(t *testing.T) {
	var p Producer = NopProducer{}
	assert.NoError(t, p.Publish(context.Background(), "1", map[string]string{"type": "order.placed"}))
	assert.NoError(t, p.Close())
}
