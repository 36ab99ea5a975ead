package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"indexmd/internal/application"
	"indexmd/internal/domain"
)

// Summarizer services
const (
	ServiceOllama = "ollama"
	ServiceOpenAI = "openai"
	ServiceClaude = "claude"
)

const DefaultRootPath = "."

// RootPath returns the source root from the INDEXMD_ROOT env var,
// falling back to DefaultRootPath.
func RootPath() string {
	if env := os.Getenv("INDEXMD_ROOT"); env != "" {
		return env
	}
	return DefaultRootPath
}

// Config holds the settings shared by the binaries
type Config struct {
	Service  string `toml:"service" json:"service"`
	Model    string `toml:"model" json:"model"`
	Endpoint string `toml:"endpoint" json:"endpoint"`
	APIKey   string `toml:"api_key" json:"api_key"`

	Suggest          bool     `toml:"suggest" json:"suggest"`
	TOC              bool     `toml:"toc" json:"toc"`
	Types            bool     `toml:"types" json:"types"`
	Analyze          bool     `toml:"analyze" json:"analyze"`
	JSON             bool     `toml:"json" json:"json"`
	PersistRoot      bool     `toml:"persist_root" json:"persist_root"`
	TOCMinSections   int      `toml:"toc_min_sections" json:"toc_min_sections"`
	SuggestThreshold int      `toml:"suggest_threshold" json:"suggest_threshold"`
	NoiseTerms       []string `toml:"noise_terms" json:"noise_terms"`

	IncludeHidden bool    `toml:"include_hidden" json:"include_hidden"`
	RateLimit     float64 `toml:"rate_limit" json:"rate_limit"`
	Cache         bool    `toml:"cache" json:"cache"`
	LogFile       string  `toml:"log_file" json:"log_file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Service:          ServiceOllama,
		Model:            "phi3:mini",
		JSON:             true,
		TOCMinSections:   application.DefaultTOCMinSections,
		SuggestThreshold: application.DefaultSuggestThreshold,
		NoiseTerms:       append([]string(nil), domain.DefaultNoiseTerms...),
		Cache:            true,
	}
}

// Path returns the config file location: $INDEXMD_CONFIG, else
// $XDG_CONFIG_HOME/indexmd/config.toml
func Path() (string, error) {
	if p := os.Getenv("INDEXMD_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "indexmd", "config.toml"), nil
}

// Load layers defaults, the TOML file when present, and the environment
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit config file
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides
func (c *Config) ApplyEnvOverrides() {
	if service := os.Getenv("INDEXMD_SERVICE"); service != "" {
		c.Service = service
	}
	if model := os.Getenv("INDEXMD_MODEL"); model != "" {
		c.Model = model
	}
	if endpoint := os.Getenv("INDEXMD_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.APIKey = key
	}
	// OLLAMA_HOST only applies to the ollama service without an explicit endpoint
	if host := os.Getenv("OLLAMA_HOST"); host != "" && c.Service == ServiceOllama && c.Endpoint == "" {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		c.Endpoint = host
	}
}

// Validate checks the service and numeric settings
func (c *Config) Validate() error {
	switch c.Service {
	case ServiceOllama, ServiceOpenAI, ServiceClaude:
	default:
		return &application.ValidationError{
			Field:   "service",
			Message: fmt.Sprintf("unknown service %q (want ollama, openai or claude)", c.Service),
		}
	}
	if c.TOCMinSections < 0 {
		return &application.ValidationError{Field: "toc_min_sections", Message: "must not be negative"}
	}
	if c.SuggestThreshold < 1 || c.SuggestThreshold > 10 {
		return &application.ValidationError{Field: "suggest_threshold", Message: "must be between 1 and 10"}
	}
	if c.RateLimit < 0 {
		return &application.ValidationError{Field: "rate_limit", Message: "must not be negative"}
	}
	return nil
}

// GenerateOptions maps the config onto the engine options
func (c *Config) GenerateOptions() application.GenerateOptions {
	opts := application.DefaultGenerateOptions()
	opts.Suggest = c.Suggest
	opts.TOC = c.TOC
	opts.IncludeTypes = c.Types
	opts.Analyze = c.Analyze
	opts.WriteJSON = c.JSON
	opts.PersistRoot = c.PersistRoot
	if c.TOCMinSections > 0 {
		opts.TOCMinSections = c.TOCMinSections
	}
	if c.SuggestThreshold > 0 {
		opts.SuggestThreshold = c.SuggestThreshold
	}
	if c.NoiseTerms != nil {
		opts.NoiseTerms = c.NoiseTerms
	}
	return opts
}
