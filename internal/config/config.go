// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.studybot/config.yaml or ./config.yaml)
//  3. Default values
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidStoreBackend indicates the vector store backend is not supported.
	ErrInvalidStoreBackend = errors.New("invalid store backend")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidTopP indicates the nucleus sampling value is out of range.
	ErrInvalidTopP = errors.New("invalid top_p")

	// ErrInvalidMaxNewTokens indicates the generation ceiling is out of range.
	ErrInvalidMaxNewTokens = errors.New("invalid max_new_tokens")

	// ErrInvalidRetrieveTopK indicates the retrieval result count is out of range.
	ErrInvalidRetrieveTopK = errors.New("invalid retrieve_top_k")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Vector store backend identifiers used in Config.StoreBackend.
const (
	StoreChromem = "chromem"
	StoreQdrant  = "qdrant"
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider      string `mapstructure:"provider"`       // "gemini" (default) or "ollama"
	ChatModel     string `mapstructure:"chat_model"`     // primary generation model
	FallbackModel string `mapstructure:"fallback_model"` // hardcoded secondary model choice
	EmbedModel    string `mapstructure:"embed_model"`    // embedding model

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host"`

	// Generation sampling configuration
	Temperature  float32 `mapstructure:"temperature"`
	TopP         float32 `mapstructure:"top_p"`
	TopK         int32   `mapstructure:"top_k"`
	MaxNewTokens int32   `mapstructure:"max_new_tokens"`
	RepeatLastN  int32   `mapstructure:"repeat_last_n"` // repetition-avoidance window

	// Vector store configuration
	StoreBackend string `mapstructure:"store_backend"` // "chromem" (default) or "qdrant"
	VectorsDir   string `mapstructure:"vectors_dir"`   // chromem persistence directory
	Collection   string `mapstructure:"collection"`
	RetrieveTopK int    `mapstructure:"retrieve_top_k"`
	DocsDir      string `mapstructure:"docs_dir"` // optional supplemental passages

	// Qdrant configuration (only used when store_backend is "qdrant")
	QdrantHost string `mapstructure:"qdrant_host"`
	QdrantPort int    `mapstructure:"qdrant_port"`

	// HTTP server configuration
	Addr          string  `mapstructure:"addr"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".studybot")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also support current directory

	setDefaults(configDir)
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Fail-fast validation
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(configDir string) {
	// AI defaults
	viper.SetDefault("provider", ProviderGemini)
	viper.SetDefault("chat_model", "gemini-2.5-flash")
	viper.SetDefault("fallback_model", "gemini-2.0-flash")
	viper.SetDefault("embed_model", "text-embedding-004")

	// Ollama defaults
	viper.SetDefault("ollama_host", "http://localhost:11434")

	// Sampling defaults mirror the reference deployment: bounded new tokens,
	// a two-token repetition window and nucleus/top-k sampling.
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("top_p", 0.95)
	viper.SetDefault("top_k", 50)
	viper.SetDefault("max_new_tokens", 100)
	viper.SetDefault("repeat_last_n", 2)

	// Vector store defaults
	viper.SetDefault("store_backend", StoreChromem)
	viper.SetDefault("vectors_dir", filepath.Join(configDir, "vectors"))
	viper.SetDefault("collection", "cs_learning_docs")
	viper.SetDefault("retrieve_top_k", 3)
	viper.SetDefault("docs_dir", "")

	// Qdrant defaults (gRPC port)
	viper.SetDefault("qdrant_host", "localhost")
	viper.SetDefault("qdrant_port", 6334)

	// HTTP server defaults
	viper.SetDefault("addr", "127.0.0.1:7860")
	viper.SetDefault("rate_per_second", 5.0)
	viper.SetDefault("rate_burst", 10)
}

// bindEnvVariables binds environment variable overrides explicitly.
// GEMINI_API_KEY is read directly by the genai client, not via Viper;
// its presence is checked in Validate based on the selected provider.
func bindEnvVariables() {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a BUG in our code, not a runtime error.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "STUDYBOT_PROVIDER")
	mustBind("chat_model", "STUDYBOT_CHAT_MODEL")
	mustBind("fallback_model", "STUDYBOT_FALLBACK_MODEL")
	mustBind("embed_model", "STUDYBOT_EMBED_MODEL")
	mustBind("ollama_host", "STUDYBOT_OLLAMA_HOST")
	mustBind("temperature", "STUDYBOT_TEMPERATURE")
	mustBind("top_p", "STUDYBOT_TOP_P")
	mustBind("top_k", "STUDYBOT_TOP_K")
	mustBind("max_new_tokens", "STUDYBOT_MAX_NEW_TOKENS")
	mustBind("repeat_last_n", "STUDYBOT_REPEAT_LAST_N")
	mustBind("store_backend", "STUDYBOT_STORE_BACKEND")
	mustBind("vectors_dir", "STUDYBOT_VECTORS_DIR")
	mustBind("collection", "STUDYBOT_COLLECTION")
	mustBind("retrieve_top_k", "STUDYBOT_RETRIEVE_TOP_K")
	mustBind("docs_dir", "STUDYBOT_DOCS_DIR")
	mustBind("addr", "STUDYBOT_ADDR")
	mustBind("rate_per_second", "STUDYBOT_RATE_PER_SECOND")
	mustBind("rate_burst", "STUDYBOT_RATE_BURST")
	mustBind("qdrant_host", "STUDYBOT_QDRANT_HOST")
	mustBind("qdrant_port", "STUDYBOT_QDRANT_PORT")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY must be set when provider is %q",
				ErrMissingAPIKey, ProviderGemini)
		}
	case ProviderOllama:
		// No key required; host has a default.
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)",
			ErrInvalidProvider, c.Provider, ProviderGemini, ProviderOllama)
	}

	switch c.StoreBackend {
	case StoreChromem, StoreQdrant:
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)",
			ErrInvalidStoreBackend, c.StoreBackend, StoreChromem, StoreQdrant)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (must be in [0, 2])", ErrInvalidTemperature, c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("%w: %v (must be in (0, 1])", ErrInvalidTopP, c.TopP)
	}
	if c.MaxNewTokens < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidMaxNewTokens, c.MaxNewTokens)
	}
	if c.RetrieveTopK < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidRetrieveTopK, c.RetrieveTopK)
	}

	return nil
}
