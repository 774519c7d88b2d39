package channels

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/config"
	"github.com/callsight/callsight/internal/knowledge"
)

// SlackChannel connects a Slack workspace to the agent over Socket Mode.
// Each Slack channel can be mapped to a role view; unmapped channels use
// the configured default role.
type SlackChannel struct {
	BaseChannel
	config config.SlackConfig
	client *slack.Client
	socket *socketmode.Client

	running bool
	cancel  context.CancelFunc
	mu      sync.RWMutex

	// A message that mentions the bot arrives as both a message event
	// and an app_mention event; channel+timestamp identifies the
	// duplicate.
	seen      map[string]struct{}
	seenOrder []string
}

// NewSlackChannel creates a Slack channel from config.
func NewSlackChannel(cfg config.SlackConfig, messageBus *bus.MessageBus) *SlackChannel {
	return &SlackChannel{
		BaseChannel: BaseChannel{Bus: messageBus},
		config:      cfg,
		seen:        make(map[string]struct{}),
	}
}

func (c *SlackChannel) Name() string { return "slack" }

// Start connects to Slack and begins forwarding messages to the bus.
// Disabled config is a no-op.
func (c *SlackChannel) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	if c.config.BotToken == "" {
		return fmt.Errorf("slack bot token is required")
	}
	if c.config.AppToken == "" {
		return fmt.Errorf("slack app token is required for socket mode")
	}

	c.client = slack.New(
		c.config.BotToken,
		slack.OptionAppLevelToken(c.config.AppToken),
	)
	c.socket = socketmode.New(c.client)

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true

	c.Bus.Subscribe(c.Name(), func(answer *bus.OutboundAnswer) {
		if err := c.Send(ctx, answer); err != nil {
			slog.Error("slack send failed", "chat_id", answer.ChatID, "error", err)
		}
	})

	go c.handleEvents(ctx)
	go func() {
		if err := c.socket.Run(); err != nil {
			slog.Error("slack socket mode error", "error", err)
		}
	}()

	slog.Info("slack channel started")
	return nil
}

func (c *SlackChannel) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.running = false
	slog.Info("slack channel stopped")
	return nil
}

// Send posts an answer back to its originating Slack channel.
func (c *SlackChannel) Send(ctx context.Context, answer *bus.OutboundAnswer) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return fmt.Errorf("slack client not initialized")
	}

	_, _, err := client.PostMessageContext(ctx, answer.ChatID,
		slack.MsgOptionText(RenderText(answer.Response), false),
	)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}

func (c *SlackChannel) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-c.socket.Events:
			switch evt.Type {
			case socketmode.EventTypeEventsAPI:
				c.handleEventsAPI(evt)
			case socketmode.EventTypeConnected:
				slog.Info("connected to slack")
			case socketmode.EventTypeConnectionError:
				slog.Error("slack connection error")
			}
		}
	}
}

func (c *SlackChannel) handleEventsAPI(evt socketmode.Event) {
	apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return
	}
	if evt.Request != nil {
		c.socket.Ack(*evt.Request)
	}
	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}

	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		// Ignore bot messages and edits.
		if ev.BotID != "" || ev.SubType != "" {
			return
		}
		c.publishQuery(ev.User, ev.Channel, ev.Text, ev.TimeStamp)
	case *slackevents.AppMentionEvent:
		c.publishQuery(ev.User, ev.Channel, ev.Text, ev.TimeStamp)
	}
}

const seenLimit = 256

// alreadySeen records a channel+timestamp pair and reports whether it was
// seen before. Oldest entries are dropped past seenLimit.
func (c *SlackChannel) alreadySeen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.seen[key]; dup {
		return true
	}
	c.seen[key] = struct{}{}
	c.seenOrder = append(c.seenOrder, key)
	if len(c.seenOrder) > seenLimit {
		delete(c.seen, c.seenOrder[0])
		c.seenOrder = c.seenOrder[1:]
	}
	return false
}

func (c *SlackChannel) publishQuery(user, channelID, text, ts string) {
	if c.alreadySeen(channelID + ":" + ts) {
		return
	}
	c.Bus.PublishInbound(&bus.InboundQuery{
		Channel:   c.Name(),
		SenderID:  user,
		ChatID:    channelID,
		TraceID:   ts,
		Role:      c.roleFor(channelID),
		Query:     text,
		Timestamp: time.Now(),
	})
}

// roleFor resolves the role view for a Slack channel from the configured
// mapping, falling back to the default role.
func (c *SlackChannel) roleFor(channelID string) knowledge.Role {
	if r, ok := c.config.ChannelRoles[channelID]; ok && knowledge.ValidRole(knowledge.Role(r)) {
		return knowledge.Role(r)
	}
	if knowledge.ValidRole(knowledge.Role(c.config.DefaultRole)) {
		return knowledge.Role(c.config.DefaultRole)
	}
	return knowledge.RoleAgent
}
