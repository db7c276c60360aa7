package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the content generation service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Completion CompletionConfig `yaml:"completion"`
	Search     SearchConfig     `yaml:"search"`
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	Port           int    `yaml:"port" env:"CONTENT_API_PORT"`
	Debug          bool   `yaml:"debug" env:"CONTENT_API_DEBUG"`
	MaxTopicLength int    `yaml:"max_topic_length"`
}

// CompletionConfig holds completion provider configuration.
type CompletionConfig struct {
	URL        string        `yaml:"url" env:"COMPLETION_URL"`
	APIKey     string        `yaml:"api_key" env:"AI21_API_KEY"`
	MaxTokens  int           `yaml:"max_tokens"`
	NumResults int           `yaml:"num_results"`
	Timeout    time.Duration `yaml:"timeout"`
}

// SearchConfig holds search provider configuration.
type SearchConfig struct {
	URL     string        `yaml:"url" env:"SEARCH_URL"`
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig holds content store configuration.
type StoreConfig struct {
	Path string `yaml:"path" env:"CONTENT_STORE_PATH"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "content-api"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 8000
	}
	if cfg.Service.MaxTopicLength == 0 {
		cfg.Service.MaxTopicLength = 500
	}

	// Completion provider defaults
	if cfg.Completion.URL == "" {
		cfg.Completion.URL = "https://api.ai21.com/studio/v1/j2-large/complete"
	}
	if cfg.Completion.MaxTokens == 0 {
		cfg.Completion.MaxTokens = 100
	}
	if cfg.Completion.NumResults == 0 {
		cfg.Completion.NumResults = 1
	}
	if cfg.Completion.Timeout == 0 {
		cfg.Completion.Timeout = 10 * time.Second
	}

	// Search provider defaults
	if cfg.Search.URL == "" {
		cfg.Search.URL = "https://api.duckduckgo.com/"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 30 * time.Second
	}

	// Store defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "content_data.json"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// CORS defaults
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return &ValidationError{Field: "service.port", Message: fmt.Sprintf("invalid port: %d", c.Service.Port)}
	}
	if c.Service.MaxTopicLength < 1 {
		return &ValidationError{Field: "service.max_topic_length", Message: "must be greater than 0"}
	}
	if c.Completion.URL == "" {
		return &ValidationError{Field: "completion.url", Message: "is required"}
	}
	if c.Search.URL == "" {
		return &ValidationError{Field: "search.url", Message: "is required"}
	}
	if c.Store.Path == "" {
		return &ValidationError{Field: "store.path", Message: "is required"}
	}
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}

// validateLogLevel checks if a log level is valid.
func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

// validateLogFormat checks if a log format is valid.
func validateLogFormat(format string) error {
	switch format {
	case "json", "console":
		return nil
	default:
		return &ValidationError{Field: "logging.format", Message: "must be one of: json, console"}
	}
}
