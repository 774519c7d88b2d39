package bus

import (
	"context"
	"testing"
	"time"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/knowledge"
)

func TestInboundRoundTrip(t *testing.T) {
	b := NewMessageBus()
	b.PublishInbound(&InboundQuery{
		Channel:  "web",
		ChatID:   "chat-1",
		Role:     knowledge.RoleSupervisor,
		Query:    "analyze team performance",
		Metadata: map[string]any{"session": "web:alice"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	q, err := b.ConsumeInbound(ctx)
	if err != nil {
		t.Fatalf("ConsumeInbound: %v", err)
	}
	if q.Query != "analyze team performance" {
		t.Errorf("query = %q", q.Query)
	}
	if q.Role != knowledge.RoleSupervisor {
		t.Errorf("role = %q", q.Role)
	}
	if q.Timestamp.IsZero() {
		t.Error("timestamp not defaulted")
	}
}

func TestConsumeInboundCancellation(t *testing.T) {
	b := NewMessageBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.ConsumeInbound(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestDispatchOutbound(t *testing.T) {
	b := NewMessageBus()

	got := make(chan *OutboundAnswer, 1)
	b.Subscribe("slack", func(a *OutboundAnswer) { got <- a })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.DispatchOutbound(ctx)

	b.PublishOutbound(&OutboundAnswer{
		Channel: "slack",
		ChatID:  "C123",
		Response: &agent.Response{
			Type:    agent.TypeText,
			Content: "done",
		},
	})

	select {
	case a := <-got:
		if a.Response.Content != "done" {
			t.Errorf("content = %q", a.Response.Content)
		}
	case <-time.After(time.Second):
		t.Fatal("answer not dispatched")
	}
}

func TestSubscribeIsPerChannel(t *testing.T) {
	b := NewMessageBus()

	slack := make(chan *OutboundAnswer, 1)
	b.Subscribe("slack", func(a *OutboundAnswer) { slack <- a })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.DispatchOutbound(ctx)

	b.PublishOutbound(&OutboundAnswer{Channel: "web", Response: &agent.Response{Type: agent.TypeText}})

	select {
	case <-slack:
		t.Fatal("web answer delivered to slack subscriber")
	case <-time.After(50 * time.Millisecond):
	}
}
