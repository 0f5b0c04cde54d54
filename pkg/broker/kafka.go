package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

// Producer publishes JSON encoded events.
type Producer interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *Config) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			// Events are published one at a time on the request path; the
			// default 1s batch window would delay every response.
			BatchSize:              1,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return errors.Wrapf(err, "write message to %s", p.writer.Topic)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, string, interface{}) error { return nil }
func (NopProducer) Close() error                                        { return nil }
