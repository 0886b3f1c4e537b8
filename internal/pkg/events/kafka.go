package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to a single Kafka topic keyed by Event.Key
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher for topic on brokers. Writes are
// batched in the background so request handlers never wait on the broker.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		Completion:             p.delivered,
	}
	return p
}

// delivered runs on the writer's goroutine once a batch is acknowledged or dropped
func (p *KafkaPublisher) delivered(messages []kafka.Message, err error) {
	if err == nil {
		p.logger.Debug().Int("count", len(messages)).Msg("Events delivered")
		return
	}
	for _, m := range messages {
		p.logger.Error().Err(err).Str("type", eventType(m)).Str("key", string(m.Key)).Msg("Event delivery failed")
	}
}

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "type" {
			return string(h.Value)
		}
	}
	return ""
}

// Publish queues e on the writer. Delivery failures surface through the
// completion log, not the returned error.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := Encode(e)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", e.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(e.Key),
		Value:   value,
		Time:    e.OccurredAt,
		Headers: []kafka.Header{{Key: "type", Value: []byte(e.Type)}},
	})
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", e.Type, err)
	}

	p.logger.Debug().Str("type", e.Type).Str("key", e.Key).Msg("Event queued")
	return nil
}

// Close flushes pending writes and releases connections
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
