package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// DefaultPath is the configuration file consulted when --config is not given.
const DefaultPath = "simwiki.yaml"

// Config represents the application configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// SiteConfig holds values shown on every rendered page.
type SiteConfig struct {
	Title string `yaml:"title"`
}

// GenerationConfig controls how a run reacts to bad entities and what it does after writing pages.
type GenerationConfig struct {
	OnError              OnErrorPolicy `yaml:"on_error"`
	MarkdownDescriptions *bool         `yaml:"markdown_descriptions,omitempty"`
	VerifyLinks          bool          `yaml:"verify_links"`
}

// RenderMarkdown reports whether free-text descriptions are rendered as Markdown.
func (g GenerationConfig) RenderMarkdown() bool {
	return g.MarkdownDescriptions == nil || *g.MarkdownDescriptions
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// Defaults on an empty config cannot fail.
	_ = applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// #nosec G304 -- the config path is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns defaults when the file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(configPath)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
