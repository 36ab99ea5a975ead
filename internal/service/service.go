// Package service builds the adapters selected by a config.
package service

import (
	"fmt"

	"indexmd/internal/adapters/analyzer"
	"indexmd/internal/adapters/claudecli"
	"indexmd/internal/adapters/filesystem"
	"indexmd/internal/adapters/ollama"
	"indexmd/internal/adapters/openai"
	"indexmd/internal/adapters/sqlite"
	"indexmd/internal/adapters/throttle"
	"indexmd/internal/application"
	"indexmd/internal/application/indexer"
	"indexmd/internal/config"
	"indexmd/internal/ports"
)

// NewSummarizer returns the summarizer named by cfg.Service, rate limited
// when cfg.RateLimit is set. debug turns on request logging for the HTTP
// clients.
func NewSummarizer(cfg *config.Config, debug bool) (ports.Summarizer, error) {
	model := cfg.Model
	// the built-in default model only exists on ollama
	if cfg.Service != config.ServiceOllama && model == ollama.DefaultModel {
		model = ""
	}

	var s ports.Summarizer
	switch cfg.Service {
	case config.ServiceOllama:
		c := ollama.NewClient(cfg.Endpoint, model)
		c.Debug = debug
		s = c
	case config.ServiceOpenAI:
		c := openai.NewClient(cfg.Endpoint, cfg.APIKey, model)
		if !c.IsConfigured() {
			return nil, fmt.Errorf("--api-key or OPENAI_API_KEY is required: %w", openai.ErrNotConfigured)
		}
		c.Debug = debug
		s = c
	case config.ServiceClaude:
		c := claudecli.NewSummarizer(claudecli.WithModel(model))
		if !c.IsAvailable() {
			return nil, fmt.Errorf("claude CLI not found in PATH")
		}
		s = c
	default:
		return nil, &application.ValidationError{Field: "service", Message: fmt.Sprintf("unknown service %q", cfg.Service)}
	}

	return throttle.Wrap(s, cfg.RateLimit), nil
}

// NewTree returns the filesystem tree honoring cfg.IncludeHidden
func NewTree(cfg *config.Config) *filesystem.Tree {
	return filesystem.NewTree(filesystem.WithHidden(cfg.IncludeHidden))
}

// OpenStore opens the cache of root, or returns nil when caching is off
func OpenStore(cfg *config.Config, root string) (*sqlite.Store, error) {
	if !cfg.Cache {
		return nil, nil
	}
	store, err := sqlite.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}

// NewIndexer wires an indexer from the config. store and logger may be nil.
func NewIndexer(cfg *config.Config, opts application.GenerateOptions, summarizer ports.Summarizer, store *sqlite.Store, logger ports.Logger) *indexer.Indexer {
	var options []indexer.Option
	if store != nil {
		options = append(options, indexer.WithCache(store))
	}
	if logger != nil {
		options = append(options, indexer.WithLogger(logger))
	}
	return indexer.New(NewTree(cfg), analyzer.Default(), summarizer, opts, options...)
}
