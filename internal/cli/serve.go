package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/auth"
	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/channels"
	"github.com/callsight/callsight/internal/config"
	"github.com/callsight/callsight/internal/history"
	"github.com/callsight/callsight/internal/server"
	"github.com/callsight/callsight/internal/session"
	"github.com/callsight/callsight/internal/stream"
	"github.com/callsight/callsight/internal/worker"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway, channels, and worker",
	Run:   runServe,
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServe(cmd *cobra.Command, args []string) {
	printHeader("🌐 CallSight Serve")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	setupLogging(cfg.Logging)

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

	secret := cfg.Auth.Secret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			fmt.Printf("Secret generation error: %v\n", err)
			os.Exit(1)
		}
		secret = hex.EncodeToString(buf)
		slog.Warn("auth.secret not set, issued tokens will not survive a restart")
	}
	authSvc := auth.NewService(secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	msgBus := bus.NewMessageBus()
	ag := agent.New(st)
	publisher := stream.NewPublisher(cfg.Stream.Brokers, cfg.Stream.Topic)
	defer publisher.Close()

	w := worker.New(worker.Options{
		Agent:     ag,
		Store:     st,
		Bus:       msgBus,
		Sessions:  session.NewManager(filepath.Join(cfg.Paths.DataDir, "sessions")),
		History:   hist,
		Publisher: publisher,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slack := channels.NewSlackChannel(cfg.Channels.Slack, msgBus)
	if err := slack.Start(ctx); err != nil {
		slog.Error("slack channel failed to start", "error", err)
	}
	defer slack.Stop()

	go w.Run(ctx)
	go msgBus.DispatchOutbound(ctx)

	srv := server.New(server.Options{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Version: version,
		Auth:    authSvc,
		Store:   st,
		Agent:   ag,
		Worker:  w,
		History: hist,
	})

	fmt.Printf("Gateway listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if err := srv.ListenAndServe(ctx); err != nil {
		slog.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}
