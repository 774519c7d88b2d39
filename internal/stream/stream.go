// Package stream publishes chat turn events to Kafka for downstream
// analytics. With no brokers configured the publisher is a no-op.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// TurnEvent is the payload published for each processed query.
type TurnEvent struct {
	TurnID       string    `json:"turnId"`
	SessionKey   string    `json:"sessionKey"`
	Channel      string    `json:"channel"`
	UserRole     string    `json:"userRole"`
	Query        string    `json:"query"`
	ResponseType string    `json:"responseType"`
	ToolsUsed    []string  `json:"toolsUsed,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher writes turn events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic. An
// empty broker list returns a disabled publisher whose Publish is a no-op.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Enabled reports whether events will actually be written.
func (p *Publisher) Enabled() bool { return p.writer != nil }

// Publish writes one turn event, keyed by session so a session's turns
// stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, evt *TurnEvent) error {
	if p.writer == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal turn event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.SessionKey),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write turn event: %w", err)
	}

	slog.Debug("published turn event", "turn_id", evt.TurnID, "session", evt.SessionKey)
	return nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
