package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/channels"
	"github.com/callsight/callsight/internal/config"
	"github.com/callsight/callsight/internal/history"
	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/session"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/stream"
	"github.com/callsight/callsight/internal/worker"
	"github.com/spf13/cobra"
)

var (
	chatQuery   string
	chatRole    string
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the analytics assistant directly in CLI",
	Run:   runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatQuery, "query", "q", "", "Query to send to the assistant")
	chatCmd.Flags().StringVarP(&chatRole, "role", "r", "agent", "Role view (enterprise_leader, supervisor, agent, developer)")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "default", "Session ID")
}

// newDataStore loads the seed file when one is configured, else the
// built-in dataset.
func newDataStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Paths.SeedFile != "" {
		return store.Load(cfg.Paths.SeedFile)
	}
	return store.New(), nil
}

func runChat(cmd *cobra.Command, args []string) {
	if chatQuery == "" {
		fmt.Println("Error: --query is required")
		os.Exit(1)
	}
	role := knowledge.Role(chatRole)
	if !knowledge.ValidRole(role) {
		fmt.Printf("Error: unknown role %q\n", chatRole)
		os.Exit(1)
	}

	printHeader("💬 CallSight Chat")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	st, err := newDataStore(cfg)
	if err != nil {
		fmt.Printf("Data error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		fmt.Printf("Data dir error: %v\n", err)
		os.Exit(1)
	}
	hist, err := history.NewService(filepath.Join(cfg.Paths.DataDir, "history.db"))
	if err != nil {
		fmt.Printf("History error: %v\n", err)
		os.Exit(1)
	}
	defer hist.Close()

	w := worker.New(worker.Options{
		Agent:     agent.New(st),
		Store:     st,
		Bus:       bus.NewMessageBus(),
		Sessions:  session.NewManager(filepath.Join(cfg.Paths.DataDir, "sessions")),
		History:   hist,
		Publisher: stream.NewPublisher(nil, ""),
	})

	resp := w.Process(context.Background(), &bus.InboundQuery{
		Channel: "cli",
		ChatID:  chatSession,
		Role:    role,
		Query:   chatQuery,
	})

	fmt.Println("\n" + channels.RenderText(resp))
}
