package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8170 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTLHours != 12 {
		t.Errorf("token ttl = %d", cfg.Auth.TokenTTLHours)
	}
	if cfg.Stream.Topic != "callsight.chat.turns" {
		t.Errorf("topic = %q", cfg.Stream.Topic)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestConfigPathOverride(t *testing.T) {
	t.Setenv("CALLSIGHT_CONFIG", "/tmp/custom/config.json")
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if path != "/tmp/custom/config.json" {
		t.Errorf("path = %q", path)
	}
}

func TestConfigPathHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALLSIGHT_CONFIG", "")
	t.Setenv("CALLSIGHT_HOME", dir)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	want := filepath.Join(dir, ConfigDir, ConfigFile)
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("CALLSIGHT_CONFIG", path)

	file := DefaultConfig()
	file.Server.Port = 9000
	file.Channels.Slack.Enabled = true
	data, _ := json.Marshal(file)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CALLSIGHT_SERVER_HOST", "0.0.0.0")
	t.Setenv("CALLSIGHT_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port from file = %d", cfg.Server.Port)
	}
	if !cfg.Channels.Slack.Enabled {
		t.Error("slack not enabled from file")
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host from env = %q", cfg.Server.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level from env = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CALLSIGHT_CONFIG", filepath.Join(t.TempDir(), "nope.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8170 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("CALLSIGHT_CONFIG", path)
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	t.Setenv("CALLSIGHT_CONFIG", path)

	cfg := DefaultConfig()
	cfg.Stream.Brokers = []string{"localhost:9092"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Stream.Brokers) != 1 || got.Stream.Brokers[0] != "localhost:9092" {
		t.Errorf("brokers = %v", got.Stream.Brokers)
	}
}
