package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Upload      UploadConfig  `toml:"upload"`
	LLM         LLMConfig     `toml:"llm"`
	Logging     LoggingConfig `toml:"logging"`
	Sweeper     SweeperConfig `toml:"sweeper"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// UploadConfig controls how uploaded files are received and stored
type UploadConfig struct {
	Dir       string `toml:"dir" validate:"required"` // Directory where uploaded files are written
	MaxSizeMB int    `toml:"max_size_mb" validate:"gt=0"`
}

// LLMConfig configures the inference transport and invocation behavior.
// Models are tried in order, one attempt each, until one succeeds.
type LLMConfig struct {
	Provider       string        `toml:"provider" validate:"oneof=hf claude gemini"` // Inference provider: "hf" (HTTP endpoint), "claude", "gemini"
	Endpoint       string        `toml:"endpoint"`                                   // Base URL for the hf provider
	APIKey         string        `toml:"api_key"`
	Models         []string      `toml:"models" validate:"min=1"` // Ordered model identifiers, first is primary
	MaxNewTokens   int           `toml:"max_new_tokens" validate:"gt=0"`
	Temperature    float64       `toml:"temperature" validate:"gte=0,lte=2"`
	ContextCeiling int           `toml:"context_ceiling" validate:"gt=0"` // Per-document character ceiling in prompts
	MaxConcurrent  int           `toml:"max_concurrent" validate:"gt=0"`  // Cap on in-flight inference calls
	RequestTimeout time.Duration `toml:"request_timeout"`
	RatePerSecond  float64       `toml:"rate_per_second"` // Request rate limit for the hf provider (0 = unlimited)
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// SweeperConfig controls the periodic re-queue of documents stuck in pending,
// e.g. after a restart lost their detached processing goroutine.
type SweeperConfig struct {
	Enabled    bool          `toml:"enabled"`
	Schedule   string        `toml:"schedule"`    // Cron schedule (with seconds field)
	PendingAge time.Duration `toml:"pending_age"` // Minimum age before a pending document is re-queued
}

// DefaultConfig returns the configuration defaults applied before any file
// or environment override.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/responsa",
			},
		},
		Upload: UploadConfig{
			Dir:       "./data/uploads",
			MaxSizeMB: 25,
		},
		LLM: LLMConfig{
			Provider:       "hf",
			Endpoint:       "https://api-inference.huggingface.co",
			Models:         []string{"mistralai/Mistral-7B-Instruct-v0.3", "HuggingFaceH4/zephyr-7b-beta"},
			MaxNewTokens:   500,
			Temperature:    0.3,
			ContextCeiling: 15000,
			MaxConcurrent:  4,
			RequestTimeout: 60 * time.Second,
			RatePerSecond:  2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Sweeper: SweeperConfig{
			Enabled:    true,
			Schedule:   "0 */5 * * * *", // every 5 minutes
			PendingAge: 10 * time.Minute,
		},
	}
}

// LoadConfig builds configuration from defaults, then each config file in
// order, then environment variables. Later sources override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration using struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies RESPONSA_* environment variables on top of the
// loaded configuration
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESPONSA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("RESPONSA_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("RESPONSA_DB_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("RESPONSA_UPLOAD_DIR"); v != "" {
		config.Upload.Dir = v
	}
	if v := os.Getenv("RESPONSA_LLM_PROVIDER"); v != "" {
		config.LLM.Provider = v
	}
	if v := os.Getenv("RESPONSA_LLM_ENDPOINT"); v != "" {
		config.LLM.Endpoint = v
	}
	if v := os.Getenv("RESPONSA_LLM_API_KEY"); v != "" {
		config.LLM.APIKey = v
	}
	if v := os.Getenv("RESPONSA_LLM_MODELS"); v != "" {
		models := strings.Split(v, ",")
		for i := range models {
			models[i] = strings.TrimSpace(models[i])
		}
		config.LLM.Models = models
	}
	if v := os.Getenv("RESPONSA_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
