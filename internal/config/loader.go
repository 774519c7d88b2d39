package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the default config directory name.
	ConfigDir = ".callsight"
	// ConfigFile is the default config file name.
	ConfigFile = "config.json"
)

// ConfigPath returns the path to the config file, honoring the
// CALLSIGHT_CONFIG and CALLSIGHT_HOME overrides.
func ConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("CALLSIGHT_CONFIG")); explicit != "" {
		return expandHome(explicit)
	}
	home, err := resolveHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

func resolveHomeDir() (string, error) {
	if h := strings.TrimSpace(os.Getenv("CALLSIGHT_HOME")); h != "" {
		return expandHome(h)
	}
	return os.UserHomeDir()
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	base, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, path[1:]), nil
}

// loadEnvFileCandidates loads env vars from known files. Existing process
// env vars are never overridden.
func loadEnvFileCandidates() {
	candidates := make([]string, 0, 3)
	if explicit := strings.TrimSpace(os.Getenv("CALLSIGHT_ENV_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "callsight", "env"),
			filepath.Join(home, ConfigDir, ".env"),
		)
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		// godotenv.Load skips keys already present in the environment.
		_ = godotenv.Load(p)
	}
}

// Load reads the config file, then applies environment overrides per
// group. A missing file yields the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	loadEnvFileCandidates()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil // Use defaults if we can't find config path
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	envconfig.Process("CALLSIGHT_PATHS", &cfg.Paths)
	envconfig.Process("CALLSIGHT_SERVER", &cfg.Server)
	envconfig.Process("CALLSIGHT_AUTH", &cfg.Auth)
	envconfig.Process("CALLSIGHT_CHANNELS_SLACK", &cfg.Channels.Slack)
	envconfig.Process("CALLSIGHT_STREAM", &cfg.Stream)
	envconfig.Process("CALLSIGHT_LOGGING", &cfg.Logging)

	expanded, err := expandHome(cfg.Paths.DataDir)
	if err == nil && expanded != "" {
		cfg.Paths.DataDir = expanded
	}

	return cfg, nil
}

// Save writes the config to the config file, creating the directory if
// needed.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
