// Package worker runs the query processing loop: it consumes queries from
// the bus, runs them through the agent, records the turn, and publishes
// the answer back to the originating channel.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/history"
	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/session"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/stream"
)

// Worker drives the agent from the message bus.
type Worker struct {
	agent     *agent.Agent
	store     *store.Store
	bus       *bus.MessageBus
	sessions  *session.Manager
	history   *history.Service
	publisher *stream.Publisher

	running atomic.Bool
}

// Options configure a Worker. Bus and Agent are required; the rest are
// optional collaborators.
type Options struct {
	Agent     *agent.Agent
	Store     *store.Store
	Bus       *bus.MessageBus
	Sessions  *session.Manager
	History   *history.Service
	Publisher *stream.Publisher
}

// New creates a worker.
func New(opts Options) *Worker {
	return &Worker{
		agent:     opts.Agent,
		store:     opts.Store,
		bus:       opts.Bus,
		sessions:  opts.Sessions,
		history:   opts.History,
		publisher: opts.Publisher,
	}
}

// Run processes queries until the context is cancelled. Queries are
// handled strictly one at a time.
func (w *Worker) Run(ctx context.Context) error {
	w.running.Store(true)
	slog.Info("query worker started")

	for w.running.Load() {
		q, err := w.bus.ConsumeInbound(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil // Context cancelled, normal shutdown
			}
			slog.Error("failed to consume query", "error", err)
			continue
		}

		resp := w.Process(ctx, q)
		w.bus.PublishOutbound(&bus.OutboundAnswer{
			Channel:  q.Channel,
			ChatID:   q.ChatID,
			TraceID:  q.TraceID,
			Response: resp,
		})
	}
	return nil
}

// Stop signals the loop to exit after the current query.
func (w *Worker) Stop() {
	w.running.Store(false)
}

// Process runs one query end to end: session context injection, agent
// processing, session append, turn persistence, and stream publication.
func (w *Worker) Process(ctx context.Context, q *bus.InboundQuery) *agent.Response {
	role := q.Role
	if !knowledge.ValidRole(role) {
		role = knowledge.RoleAgent
	}

	sessionKey := fmt.Sprintf("%s:%s", q.Channel, q.ChatID)
	var sess *session.Session
	if w.sessions != nil {
		sess = w.sessions.GetOrCreate(sessionKey, role)
	}

	query := q.Query
	if sess != nil {
		if prefixed := w.withMemberContext(sess, query); prefixed != "" {
			query = prefixed
		}
		sess.AddUserMessage(q.Query)
	}

	resp := w.agent.ProcessQuery(ctx, query, role)

	if sess != nil {
		sess.AddAssistantMessage(resp.Content, string(resp.Type), resp.ToolsUsed)
		if err := w.sessions.Save(sess); err != nil {
			slog.Warn("failed to save session", "key", sessionKey, "error", err)
		}
	}

	turnID := uuid.NewString()
	if w.history != nil {
		err := w.history.RecordTurn(&history.Turn{
			TurnID:       turnID,
			SessionKey:   sessionKey,
			UserRole:     string(role),
			Query:        q.Query,
			ResponseType: string(resp.Type),
			Content:      resp.Content,
			ToolsUsed:    resp.ToolsUsed,
			Reasoning:    resp.Reasoning,
		})
		if err != nil {
			slog.Warn("failed to record turn", "turn_id", turnID, "error", err)
		}
	}

	if w.publisher != nil {
		err := w.publisher.Publish(ctx, &stream.TurnEvent{
			TurnID:       turnID,
			SessionKey:   sessionKey,
			Channel:      q.Channel,
			UserRole:     string(role),
			Query:        q.Query,
			ResponseType: string(resp.Type),
			ToolsUsed:    resp.ToolsUsed,
		})
		if err != nil {
			slog.Warn("failed to publish turn event", "turn_id", turnID, "error", err)
		}
	}

	return resp
}

// SelectMember pins a member to the channel's session so subsequent
// queries carry their context. An empty memberID clears the selection.
func (w *Worker) SelectMember(channel, chatID string, role knowledge.Role, memberID string) error {
	if w.sessions == nil {
		return fmt.Errorf("sessions are not enabled")
	}
	if memberID != "" && (w.store == nil || w.store.MemberByID(memberID) == nil) {
		return fmt.Errorf("member %q not found", memberID)
	}
	if !knowledge.ValidRole(role) {
		role = knowledge.RoleAgent
	}

	sess := w.sessions.GetOrCreate(fmt.Sprintf("%s:%s", channel, chatID), role)
	sess.SelectMember(memberID)
	return w.sessions.Save(sess)
}

// withMemberContext prepends the selected member's context tag to the
// query, the same in-band prefix the web UI sends. Returns "" when no
// member is selected or the member is unknown.
func (w *Worker) withMemberContext(sess *session.Session, query string) string {
	id := sess.Member()
	if id == "" || w.store == nil {
		return ""
	}
	member := w.store.MemberByID(id)
	if member == nil {
		return ""
	}
	return fmt.Sprintf("[Member Context: %s (%s)] %s", member.Name, member.MemberID, query)
}
