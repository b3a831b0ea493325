package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/hedgie/internal/llm"
)

// Config is the on-disk configuration for every hedgie command.
type Config struct {
	DB          string            `yaml:"db"`
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Game        GameConfig        `yaml:"game"`
	Source      SourceConfig      `yaml:"source"`
	LLM         LLMConfig         `yaml:"llm"`
	Log         LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// TTL expires stored lists. Empty keeps them forever.
	TTL string `yaml:"ttl"`
}

// LeaderboardConfig selects the high score backend.
type LeaderboardConfig struct {
	// Backend is one of "redis", "sqlite", "memory", "http".
	Backend string `yaml:"backend"`

	// URL is the API base URL for the "http" backend.
	URL  string `yaml:"url"`
	Size int    `yaml:"size"`
}

type GameConfig struct {
	QuestionTime string `yaml:"question_time"`
	BatchSize    int    `yaml:"batch_size"`
	LowWater     int    `yaml:"low_water"`
	Reward       int    `yaml:"reward"`
	Penalty      int    `yaml:"penalty"`
	Lives        int    `yaml:"lives"`
}

// SourceConfig selects where question batches come from.
type SourceConfig struct {
	// Mode is one of "remote", "llm", "local", "static".
	Mode    string `yaml:"mode"`
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// LLMConfig overrides the provider defaults. API keys are only read from
// the environment.
type LLMConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Timeout     string `yaml:"timeout"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "60s",
		},
		Leaderboard: LeaderboardConfig{
			Backend: "sqlite",
			Size:    10,
		},
		Game: GameConfig{
			QuestionTime: "30s",
			BatchSize:    20,
			LowWater:     5,
			Reward:       5,
			Penalty:      4,
			Lives:        3,
		},
		Source: SourceConfig{
			Mode:    "llm",
			Timeout: "20s",
		},
		LLM: LLMConfig{
			Timeout: "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads YAML config from path on top of the defaults, then applies
// HEDGIE_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// DefaultPath resolves the config file location:
// 1. HEDGIE_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/hedgie/config.yaml
// 3. ~/.config/hedgie/config.yaml
func DefaultPath() string {
	if p := os.Getenv("HEDGIE_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hedgie", "config.yaml")
}

func (c *Config) applyEnv() {
	setString(&c.DB, "HEDGIE_DB")
	setString(&c.Server.Addr, "HEDGIE_ADDR")
	setString(&c.Redis.Addr, "HEDGIE_REDIS_ADDR")
	setString(&c.Redis.Password, "HEDGIE_REDIS_PASSWORD")
	setString(&c.Leaderboard.Backend, "HEDGIE_LEADERBOARD")
	setString(&c.Leaderboard.URL, "HEDGIE_LEADERBOARD_URL")
	setString(&c.Source.Mode, "HEDGIE_SOURCE")
	setString(&c.Source.URL, "HEDGIE_SOURCE_URL")
	setString(&c.Log.Level, "HEDGIE_LOG_LEVEL")
	setString(&c.Log.File, "HEDGIE_LOG_FILE")
	if v := os.Getenv("HEDGIE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// LLMProviderConfig merges the file settings into the environment-driven
// provider configuration. An explicit HEDGIE_LLM_PROVIDER wins over the
// file; when neither names a usable provider, the standard vendor API key
// variables are probed.
func (c Config) LLMProviderConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	if os.Getenv("HEDGIE_LLM_PROVIDER") == "" && c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if cfg.Validate() != nil {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.Provider = found.Provider
			cfg.OpenAI.APIKey = firstNonEmpty(cfg.OpenAI.APIKey, found.OpenAI.APIKey)
			cfg.Anthropic.APIKey = firstNonEmpty(cfg.Anthropic.APIKey, found.Anthropic.APIKey)
			cfg.Gemini.APIKey = firstNonEmpty(cfg.Gemini.APIKey, found.Gemini.APIKey)
			cfg.OpenRouter.APIKey = firstNonEmpty(cfg.OpenRouter.APIKey, found.OpenRouter.APIKey)
		}
	}

	if c.LLM.Model != "" {
		switch cfg.Provider {
		case "openai":
			cfg.OpenAI.Model = c.LLM.Model
		case "anthropic":
			cfg.Anthropic.Model = c.LLM.Model
		case "gemini":
			cfg.Gemini.Model = c.LLM.Model
		case "openrouter":
			cfg.OpenRouter.Model = c.LLM.Model
		}
	}
	if c.LLM.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	cfg.Timeout = Duration(c.LLM.Timeout, cfg.Timeout)
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
