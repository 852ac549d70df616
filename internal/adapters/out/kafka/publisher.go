// Package kafka implements the event publisher on a Kafka topic. Messages
// are keyed by tracking code so every event of one shipment lands on the
// same partition and stays ordered.
package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.EventPublisher using a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given broker address and topic.
func NewPublisher(brokerAddr, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends one message to the topic. The payload is already encoded by
// the outbox; it is forwarded as-is.
func (p *Publisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
