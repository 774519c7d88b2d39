package stream

import (
	"context"
	"testing"
)

func TestDisabledPublisher(t *testing.T) {
	p := NewPublisher(nil, "callsight.chat.turns")
	if p.Enabled() {
		t.Fatal("publisher enabled without brokers")
	}
	if err := p.Publish(context.Background(), &TurnEvent{TurnID: "t1", SessionKey: "web:alice"}); err != nil {
		t.Fatalf("no-op publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("no-op close: %v", err)
	}
}

func TestEnabledPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "callsight.chat.turns")
	if !p.Enabled() {
		t.Fatal("publisher disabled with brokers configured")
	}
	// Not connecting; just make sure Close releases the writer cleanly.
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
