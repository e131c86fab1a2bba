package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Reminder  ReminderConfig  `yaml:"reminder"`
	MCP       MCPConfig       `yaml:"mcp"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	// Backend selects the key-value store: sqlite (default), badger,
	// or postgres.
	Backend  string         `yaml:"backend"`
	Dir      string         `yaml:"dir"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type YouTubeConfig struct {
	// OEmbedURL overrides the metadata endpoint (tests, proxies).
	OEmbedURL string `yaml:"oembed_url"`
}

type ReminderConfig struct {
	Enabled bool `yaml:"enabled"`
	// NotifyCommand is the desktop notification command to shell out
	// to (e.g. notify-send). Empty means notifications are a no-op.
	NotifyCommand string `yaml:"notify_command"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment
// variable overrides. A missing file is not an error: defaults plus
// env overrides apply. Env vars use the prefix SWEATLOG_:
//
//	SWEATLOG_SERVER_HOST, SWEATLOG_SERVER_PORT,
//	SWEATLOG_STORAGE_BACKEND, SWEATLOG_STORAGE_DIR,
//	SWEATLOG_DB_HOST, SWEATLOG_DB_PORT, SWEATLOG_DB_NAME,
//	SWEATLOG_DB_USER, SWEATLOG_DB_PASSWORD, SWEATLOG_DB_SSLMODE,
//	SWEATLOG_OEMBED_URL, SWEATLOG_NOTIFY_COMMAND
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8420,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Dir:     "data",
		},
		Reminder: ReminderConfig{
			Enabled: true,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SWEATLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SWEATLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SWEATLOG_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("SWEATLOG_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("SWEATLOG_DB_HOST"); v != "" {
		cfg.Storage.Postgres.Host = v
	}
	if v := os.Getenv("SWEATLOG_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.Port = port
		}
	}
	if v := os.Getenv("SWEATLOG_DB_NAME"); v != "" {
		cfg.Storage.Postgres.Name = v
	}
	if v := os.Getenv("SWEATLOG_DB_USER"); v != "" {
		cfg.Storage.Postgres.User = v
	}
	if v := os.Getenv("SWEATLOG_DB_PASSWORD"); v != "" {
		cfg.Storage.Postgres.Password = v
	}
	if v := os.Getenv("SWEATLOG_DB_SSLMODE"); v != "" {
		cfg.Storage.Postgres.SSLMode = v
	}
	if v := os.Getenv("SWEATLOG_OEMBED_URL"); v != "" {
		cfg.YouTube.OEmbedURL = v
	}
	if v := os.Getenv("SWEATLOG_NOTIFY_COMMAND"); v != "" {
		cfg.Reminder.NotifyCommand = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Backend {
	case "sqlite", "badger":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the %s backend", c.Storage.Backend)
		}
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if c.Storage.Postgres.Port == 0 {
			return fmt.Errorf("storage.postgres.port is required")
		}
		if c.Storage.Postgres.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if c.Storage.Postgres.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	default:
		return fmt.Errorf("storage.backend must be sqlite, badger or postgres, got %q", c.Storage.Backend)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
