package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"indexmd/internal/config"
	"indexmd/internal/logging"
	"indexmd/internal/ports"
)

var (
	configPath  string
	verbose     bool
	serviceName string
	model       string
	endpoint    string
	apiKey      string
	hidden      bool
	rateLimit   float64

	cfg        *config.Config
	logger     ports.Logger
	fileLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "indexmd-cli",
	Short: "Generate and search markdown summaries of source trees",
	Long: `indexmd-cli writes a .Index.md summary (and a .index.json record) into
every directory of a source tree, using an LLM to summarize the exported
symbols of each file. Directories whose files did not change since the last
run are skipped.

It provides commands to generate, clean up, search and show the indexes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return fileLogger.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/indexmd/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	flags.StringVar(&serviceName, "service", "", "summarizer service: ollama, openai or claude")
	flags.StringVar(&model, "model", "", "model name for the summarizer")
	flags.StringVar(&endpoint, "endpoint", "", "summarizer endpoint URL")
	flags.StringVar(&apiKey, "api-key", "", "API key (required for openai)")
	flags.BoolVar(&hidden, "hidden", false, "include dot-files and dot-directories")
	flags.Float64Var(&rateLimit, "rate-limit", 0, "maximum summarizer calls per second (0 = unlimited)")
}

// setup loads the config, applies flag overrides and opens the loggers
func setup(cmd *cobra.Command) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("service") {
		cfg.Service = serviceName
	}
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("hidden") {
		cfg.IncludeHidden = hidden
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = rateLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var sinks logging.Multi
	if verbose {
		sinks = append(sinks, log.New(os.Stderr, "[indexmd] ", log.LstdFlags))
	}
	if cfg.LogFile != "" {
		fileLogger, err = logging.New(cfg.LogFile)
		if err != nil {
			return err
		}
		sinks = append(sinks, fileLogger)
	}
	if len(sinks) > 0 {
		logger = sinks
	}
	return nil
}

// rootArg returns the first argument or the configured default root
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.RootPath()
}
