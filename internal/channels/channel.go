// Package channels connects chat platforms to the analytics agent via
// the message bus.
package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/bus"
)

// Channel defines the interface for chat platforms.
type Channel interface {
	// Name returns the channel name (e.g. "slack").
	Name() string
	// Start starts the channel listener.
	Start(ctx context.Context) error
	// Stop stops the channel listener.
	Stop() error
	// Send delivers an answer to a specific chat.
	Send(ctx context.Context, answer *bus.OutboundAnswer) error
}

// BaseChannel provides common functionality for channels.
type BaseChannel struct {
	Bus *bus.MessageBus
}

// RenderText flattens a response envelope into plain chat text for
// channels without rich rendering. Structured payloads keep their
// narration; tool attribution is appended when present.
func RenderText(resp *agent.Response) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(resp.Content)
	if len(resp.ToolsUsed) > 0 {
		fmt.Fprintf(&sb, "\n\n_via %s_", strings.Join(resp.ToolsUsed, ", "))
	}
	return sb.String()
}
