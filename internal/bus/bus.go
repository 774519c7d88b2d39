// Package bus provides the async message bus between chat channels and
// the analytics agent.
package bus

import (
	"context"
	"sync"
	"time"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/knowledge"
)

// InboundQuery is a user query from a channel to the agent.
type InboundQuery struct {
	Channel   string         `json:"channel"`
	SenderID  string         `json:"sender_id"`
	ChatID    string         `json:"chat_id"`
	TraceID   string         `json:"trace_id"`
	Role      knowledge.Role `json:"role"`
	Query     string         `json:"query"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// OutboundAnswer is the agent's response envelope routed back to a channel.
type OutboundAnswer struct {
	Channel  string          `json:"channel"`
	ChatID   string          `json:"chat_id"`
	TraceID  string          `json:"trace_id"`
	Response *agent.Response `json:"response"`
}

// MessageBus decouples channels from the agent core.
type MessageBus struct {
	inbound  chan *InboundQuery
	outbound chan *OutboundAnswer
	subs     map[string][]func(*OutboundAnswer)
	mu       sync.RWMutex
}

// NewMessageBus creates a new message bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound:  make(chan *InboundQuery, 100),
		outbound: make(chan *OutboundAnswer, 100),
		subs:     make(map[string][]func(*OutboundAnswer)),
	}
}

// PublishInbound sends a query from a channel to the agent.
func (b *MessageBus) PublishInbound(q *InboundQuery) {
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now()
	}
	b.inbound <- q
}

// ConsumeInbound blocks until a query is available or context is cancelled.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (*InboundQuery, error) {
	select {
	case q := <-b.inbound:
		return q, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PublishOutbound sends an answer from the agent to channels.
func (b *MessageBus) PublishOutbound(a *OutboundAnswer) {
	b.outbound <- a
}

// Subscribe registers a callback for answers to a specific channel.
func (b *MessageBus) Subscribe(channel string, callback func(*OutboundAnswer)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[channel] = append(b.subs[channel], callback)
}

// DispatchOutbound runs the outbound dispatcher until the context is
// cancelled. This should be run as a goroutine.
func (b *MessageBus) DispatchOutbound(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case answer := <-b.outbound:
			b.mu.RLock()
			callbacks := b.subs[answer.Channel]
			b.mu.RUnlock()

			for _, cb := range callbacks {
				cb(answer)
			}
		}
	}
}

// InboundSize returns the number of pending inbound queries.
func (b *MessageBus) InboundSize() int {
	return len(b.inbound)
}

// OutboundSize returns the number of pending outbound answers.
func (b *MessageBus) OutboundSize() int {
	return len(b.outbound)
}
