// Package config loads ocrpdf configuration from defaults, an optional
// yaml file, and OCRPDF_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Config holds ocrpdf configuration.
// Stored at: ~/.ocrpdf/config.yaml
type Config struct {
	Engine         string    `mapstructure:"engine" yaml:"engine"`                     // "ollama", "openai", "mock"
	Model          string    `mapstructure:"model" yaml:"model"`                       // Backend model identifier
	DPI            int       `mapstructure:"dpi" yaml:"dpi"`                           // Render resolution
	DelaySeconds   int       `mapstructure:"delay_seconds" yaml:"delay_seconds"`       // Pause between pages
	MaxPages       int       `mapstructure:"max_pages" yaml:"max_pages"`               // Per-run page ceiling
	MaxInputSizeMB int64     `mapstructure:"max_input_size_mb" yaml:"max_input_size_mb"`
	TimeoutSeconds int       `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`   // Per-page OCR timeout
	Prompt         string    `mapstructure:"prompt" yaml:"prompt"`                     // Prompt variant name
	Ollama         OllamaCfg `mapstructure:"ollama" yaml:"ollama"`
	OpenAI         OpenAICfg `mapstructure:"openai" yaml:"openai"`
}

// OllamaCfg configures the ollama subprocess engine.
type OllamaCfg struct {
	Binary string `mapstructure:"binary" yaml:"binary"` // Path to the ollama binary
}

// OpenAICfg configures the OpenAI-compatible HTTP engine.
type OpenAICfg struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"` // e.g. http://localhost:11434/v1
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`   // API key (supports ${ENV_VAR} syntax)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine:         "ollama",
		Model:          "deepseek-ocr",
		DPI:            300,
		DelaySeconds:   0,
		MaxPages:       500,
		MaxInputSizeMB: 500,
		TimeoutSeconds: 120,
		Prompt:         "free",
		Ollama: OllamaCfg{
			Binary: "ollama",
		},
		OpenAI: OpenAICfg{
			BaseURL: "http://localhost:11434/v1",
			APIKey:  "${OPENAI_API_KEY}",
		},
	}
}

// Manager handles loading configuration.
type Manager struct {
	v      *viper.Viper
	config *Config
}

// NewManager creates a new config manager and loads initial config.
// cfgFile overrides the search path; homePath is checked for config.yaml
// when cfgFile is empty.
func NewManager(cfgFile, homePath string) (*Manager, error) {
	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile, homePath); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile, homePath string) error {
	defaults := DefaultConfig()
	cm.v.SetDefault("engine", defaults.Engine)
	cm.v.SetDefault("model", defaults.Model)
	cm.v.SetDefault("dpi", defaults.DPI)
	cm.v.SetDefault("delay_seconds", defaults.DelaySeconds)
	cm.v.SetDefault("max_pages", defaults.MaxPages)
	cm.v.SetDefault("max_input_size_mb", defaults.MaxInputSizeMB)
	cm.v.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	cm.v.SetDefault("prompt", defaults.Prompt)
	cm.v.SetDefault("ollama.binary", defaults.Ollama.Binary)
	cm.v.SetDefault("openai.base_url", defaults.OpenAI.BaseURL)
	cm.v.SetDefault("openai.api_key", defaults.OpenAI.APIKey)

	// Environment variables with OCRPDF_ prefix
	cm.v.SetEnvPrefix("OCRPDF")
	cm.v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("config")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		if homePath != "" {
			cm.v.AddConfigPath(homePath)
		}
	}

	// Try to read config file (not required)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the loaded configuration.
func (cm *Manager) Get() *Config {
	return cm.config
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// ResolveAPIKey returns the OpenAI API key with ${ENV_VAR} references expanded.
func (c *Config) ResolveAPIKey() string {
	return ResolveEnvVars(c.OpenAI.APIKey)
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# ocrpdf configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell: export OPENAI_API_KEY=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
