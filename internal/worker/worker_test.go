package worker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/history"
	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/session"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/stream"
)

func newTestWorker(t *testing.T) (*Worker, *bus.MessageBus, *history.Service) {
	t.Helper()

	st := store.New()
	b := bus.NewMessageBus()
	hist, err := history.NewService(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history service: %v", err)
	}
	t.Cleanup(func() { _ = hist.Close() })

	w := New(Options{
		Agent:     agent.New(st),
		Store:     st,
		Bus:       b,
		Sessions:  session.NewManager(t.TempDir()),
		History:   hist,
		Publisher: stream.NewPublisher(nil, ""),
	})
	return w, b, hist
}

func TestProcessRecordsEverything(t *testing.T) {
	w, _, hist := newTestWorker(t)

	resp := w.Process(context.Background(), &bus.InboundQuery{
		Channel: "web",
		ChatID:  "alice",
		Role:    knowledge.RoleSupervisor,
		Query:   "analyze team performance",
	})
	if resp.Type != agent.TypeChart {
		t.Fatalf("type = %q", resp.Type)
	}

	turns, err := hist.ListTurns("web:alice", 10)
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].ResponseType != "chart" {
		t.Errorf("recorded type = %q", turns[0].ResponseType)
	}
	if turns[0].UserRole != "supervisor" {
		t.Errorf("recorded role = %q", turns[0].UserRole)
	}
}

func TestProcessInvalidRoleDefaultsToAgent(t *testing.T) {
	w, _, hist := newTestWorker(t)

	w.Process(context.Background(), &bus.InboundQuery{
		Channel: "web",
		ChatID:  "bob",
		Role:    knowledge.Role("root"),
		Query:   "hello",
	})

	turns, err := hist.ListTurns("web:bob", 10)
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 1 || turns[0].UserRole != "agent" {
		t.Fatalf("turns = %+v", turns)
	}
}

func TestProcessInjectsMemberContext(t *testing.T) {
	w, _, _ := newTestWorker(t)

	sess := w.sessions.GetOrCreate("web:carol", knowledge.RoleSupervisor)
	sess.SelectMember("M001")

	// A query whose classification only matters with the member prefix
	// still answers; here we just verify the session log keeps the raw
	// query while the agent saw the prefixed one.
	resp := w.Process(context.Background(), &bus.InboundQuery{
		Channel: "web",
		ChatID:  "carol",
		Role:    knowledge.RoleSupervisor,
		Query:   "what is our answer rate",
	})
	if !strings.Contains(resp.Content, "96.6%") {
		t.Errorf("content = %q", resp.Content)
	}

	msgs := sess.History(10)
	if len(msgs) != 2 {
		t.Fatalf("got %d session messages", len(msgs))
	}
	if msgs[0].Content != "what is our answer rate" {
		t.Errorf("session stored prefixed query: %q", msgs[0].Content)
	}
}

func TestMemberContextPrefix(t *testing.T) {
	w, _, _ := newTestWorker(t)

	sess := session.NewSession("web:dave", knowledge.RoleAgent)
	sess.SelectMember("M001")

	got := w.withMemberContext(sess, "show the journey")
	if !strings.HasPrefix(got, "[Member Context: ") {
		t.Fatalf("prefix missing: %q", got)
	}
	if !strings.Contains(got, "(M001)") {
		t.Errorf("member id missing: %q", got)
	}
	if !strings.HasSuffix(got, "] show the journey") {
		t.Errorf("query not preserved: %q", got)
	}

	sess.SelectMember("M-NOPE")
	if got := w.withMemberContext(sess, "show the journey"); got != "" {
		t.Errorf("unknown member produced prefix: %q", got)
	}
}

func TestRunRoundTrip(t *testing.T) {
	w, b, _ := newTestWorker(t)

	answers := make(chan *bus.OutboundAnswer, 1)
	b.Subscribe("web", func(a *bus.OutboundAnswer) { answers <- a })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.DispatchOutbound(ctx)
	go w.Run(ctx)

	b.PublishInbound(&bus.InboundQuery{
		Channel: "web",
		ChatID:  "dave",
		TraceID: "tr-1",
		Role:    knowledge.RoleEnterpriseLeader,
		Query:   "forecast call volume",
	})

	select {
	case a := <-answers:
		if a.TraceID != "tr-1" {
			t.Errorf("trace = %q", a.TraceID)
		}
		if a.Response.Type != agent.TypeChart {
			t.Errorf("type = %q", a.Response.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no answer published")
	}
}
