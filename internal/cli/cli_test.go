package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/callsight/callsight/internal/config"
)

func TestRootRegistersCommands(t *testing.T) {
	want := map[string]bool{
		"version":   false,
		"status":    false,
		"configure": false,
		"chat":      false,
		"kpis":      false,
		"serve":     false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestNewDataStoreDefault(t *testing.T) {
	st, err := newDataStore(config.DefaultConfig())
	if err != nil {
		t.Fatalf("newDataStore: %v", err)
	}
	if st.Snapshot().TotalCalls == 0 {
		t.Error("built-in dataset is empty")
	}
}

func TestNewDataStoreSeedFile(t *testing.T) {
	seed := map[string]any{
		"snapshot": map[string]any{
			"totalCalls":           100,
			"answeredCalls":        95,
			"averageHandleTime":    240,
			"customerSatisfaction": 4.5,
			"firstCallResolution":  80.0,
			"agentUtilization":     70.0,
		},
	}
	data, _ := json.Marshal(seed)
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Paths.SeedFile = path
	st, err := newDataStore(cfg)
	if err != nil {
		t.Fatalf("newDataStore: %v", err)
	}
	if st.Snapshot().TotalCalls != 100 {
		t.Errorf("totalCalls = %d, want 100", st.Snapshot().TotalCalls)
	}
}

func TestSetupLoggingLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		setupLogging(config.LoggingConfig{Level: level, Format: "text"})
	}
	setupLogging(config.LoggingConfig{Level: "info", Format: "json"})
}
