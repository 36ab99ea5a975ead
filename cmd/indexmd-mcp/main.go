package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexmd/internal/adapters/analyzer"
	mcpadapter "indexmd/internal/adapters/mcp"
	"indexmd/internal/config"
	"indexmd/internal/logging"
	"indexmd/internal/ports"
	"indexmd/internal/service"
)

func main() {
	rootFlag := flag.String("root", config.RootPath(), "source root to index")
	configFlag := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/indexmd/config.toml)")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("indexmd-mcp: %v", err)
	}

	root, err := filepath.Abs(*rootFlag)
	if err != nil {
		log.Fatalf("indexmd-mcp: %v", err)
	}

	summarizer, err := service.NewSummarizer(cfg, false)
	if err != nil {
		log.Fatalf("indexmd-mcp: %v", err)
	}

	// stdout carries the protocol; progress only goes to the log file
	var logger ports.Logger
	if cfg.LogFile != "" {
		fileLogger, err := logging.New(cfg.LogFile)
		if err != nil {
			log.Fatalf("indexmd-mcp: %v", err)
		}
		defer fileLogger.Close()
		logger = fileLogger
	}

	tree := service.NewTree(cfg)
	kit := mcpadapter.Toolkit{
		Root:       root,
		Tree:       tree,
		Analyzer:   analyzer.Default(),
		Summarizer: summarizer,
		Logger:     logger,
		Defaults:   cfg.GenerateOptions(),
	}

	store, err := service.OpenStore(cfg, root)
	if err != nil {
		log.Fatalf("indexmd-mcp: %v", err)
	}
	if store != nil {
		defer store.Close()
		kit.Cache = store
		kit.Ledger = store
	}

	mcpServer := server.NewMCPServer(
		"indexmd-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, tree, root)
	mcpadapter.RegisterWriteTools(mcpServer, kit)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("indexmd-mcp: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
