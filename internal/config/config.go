package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Load when no OpenAI key is configured. It is
// fatal at startup.
var ErrMissingAPIKey = errors.New("openai.api_key (OPENAI_API_KEY) is required")

type Config struct {
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Server     ServerConfig     `mapstructure:"server"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
	Scripts    ScriptsConfig    `mapstructure:"scripts"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

type GenerationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type ScriptsConfig struct {
	File string `mapstructure:"file"`
}

var envKeys = map[string]string{
	"openai.api_key":     "OPENAI_API_KEY",
	"openai.model":       "OPENAI_MODEL_CHAT",
	"openai.base_url":    "OPENAI_BASE_URL",
	"openai.temperature": "OPENAI_TEMPERATURE",
	"generation.timeout": "GENERATION_TIMEOUT",
	"server.port":        "PORT",
	"session.ttl":        "SESSION_TTL",
	"log.level":          "LOG_LEVEL",
	"log.json":           "LOG_JSON",
	"scripts.file":       "SCRIPTS_FILE",
}

// LoadEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set win.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from the environment and, when configFile is not
// empty, from a YAML file. Environment variables override the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("generation.timeout", "60s")
	v.SetDefault("server.port", "8080")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Generation.Timeout <= 0 {
		return nil, fmt.Errorf("generation.timeout must be positive, got %s", cfg.Generation.Timeout)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("session.ttl must be positive, got %s", cfg.Session.TTL)
	}
	return &cfg, nil
}
