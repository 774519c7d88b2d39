// Package config provides configuration types and loading for callsight.
package config

// Config is the root configuration struct.
// Top-level groups: Paths, Server, Auth, Channels, Stream, Logging.
type Config struct {
	Paths    PathsConfig    `json:"paths"`
	Server   ServerConfig   `json:"server"`
	Auth     AuthConfig     `json:"auth"`
	Channels ChannelsConfig `json:"channels"`
	Stream   StreamConfig   `json:"stream"`
	Logging  LoggingConfig  `json:"logging"`
}

// PathsConfig groups filesystem path settings.
type PathsConfig struct {
	DataDir  string `json:"dataDir" envconfig:"DATA_DIR"`
	SeedFile string `json:"seedFile,omitempty" envconfig:"SEED_FILE"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	Host string `json:"host" envconfig:"HOST"`
	Port int    `json:"port" envconfig:"PORT"`
}

// AuthConfig configures session token issuance.
type AuthConfig struct {
	Secret        string `json:"secret" envconfig:"SECRET"`
	TokenTTLHours int    `json:"tokenTtlHours" envconfig:"TOKEN_TTL_HOURS"`
}

// ChannelsConfig contains all channel configurations.
type ChannelsConfig struct {
	Slack SlackConfig `json:"slack"`
}

// SlackConfig configures the Slack channel.
type SlackConfig struct {
	Enabled      bool              `json:"enabled" envconfig:"ENABLED"`
	BotToken     string            `json:"botToken" envconfig:"BOT_TOKEN"`
	AppToken     string            `json:"appToken" envconfig:"APP_TOKEN"`
	DefaultRole  string            `json:"defaultRole" envconfig:"DEFAULT_ROLE"`
	ChannelRoles map[string]string `json:"channelRoles,omitempty"`
}

// StreamConfig configures the Kafka event stream. An empty broker list
// disables publishing.
type StreamConfig struct {
	Brokers []string `json:"brokers" envconfig:"BROKERS"`
	Topic   string   `json:"topic" envconfig:"TOPIC"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `json:"level" envconfig:"LEVEL"`   // debug, info, warn, error
	Format string `json:"format" envconfig:"FORMAT"` // text or json
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir: "~/.callsight",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8170,
		},
		Auth: AuthConfig{
			TokenTTLHours: 12,
		},
		Channels: ChannelsConfig{
			Slack: SlackConfig{
				DefaultRole: "agent",
			},
		},
		Stream: StreamConfig{
			Topic: "callsight.chat.turns",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
