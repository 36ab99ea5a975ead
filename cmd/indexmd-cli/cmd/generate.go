package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"indexmd/internal/adapters/sqlite"
	"indexmd/internal/application"
	"indexmd/internal/application/commands"
	"indexmd/internal/ports"
	"indexmd/internal/service"
)

// generateFlags are shared by generate and watch
type generateFlags struct {
	suggest     bool
	toc         bool
	types       bool
	analyze     bool
	force       bool
	json        bool
	persistRoot bool
	noCache     bool
}

var genFlags generateFlags

func (f *generateFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.suggest, "suggest", false, "add refactoring suggestions to complex files (implies --analyze)")
	flags.BoolVar(&f.toc, "toc", false, "add a table of contents to files with many sections")
	flags.BoolVar(&f.types, "types", false, "also summarize type and interface declarations")
	flags.BoolVar(&f.analyze, "analyze", false, "add a complexity footer per file")
	flags.BoolVar(&f.force, "force", false, "regenerate every directory regardless of timestamps")
	flags.BoolVar(&f.json, "json", true, "write .index.json next to each .Index.md")
	flags.BoolVar(&f.persistRoot, "persist-root", false, "also write the sidecars of the root directory")
	flags.BoolVar(&f.noCache, "no-cache", false, "do not reuse or store per-file summaries")
}

// options merges the config with the flags the user set
func (f *generateFlags) options(cmd *cobra.Command) application.GenerateOptions {
	opts := cfg.GenerateOptions()
	flags := cmd.Flags()
	if flags.Changed("suggest") {
		opts.Suggest = f.suggest
	}
	if flags.Changed("toc") {
		opts.TOC = f.toc
	}
	if flags.Changed("types") {
		opts.IncludeTypes = f.types
	}
	if flags.Changed("analyze") {
		opts.Analyze = f.analyze
	}
	if flags.Changed("json") {
		opts.WriteJSON = f.json
	}
	if flags.Changed("persist-root") {
		opts.PersistRoot = f.persistRoot
	}
	if opts.Suggest {
		opts.Analyze = true
	}
	opts.Force = f.force
	return opts
}

var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Generate .Index.md summaries below a root",
	Long: `Generate walks the root depth-first and writes a .Index.md and .index.json
into every directory whose files changed since its last index. The root's
own sidecars are only written with --persist-root.

Examples:
  indexmd-cli generate .
  indexmd-cli generate ./internal --toc --analyze
  indexmd-cli generate . --service openai --model gpt-4o-mini --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(cmd, rootArg(args), &genFlags)
		if err != nil {
			return err
		}
		defer g.Close()

		return g.run(cmd.Context())
	},
}

func init() {
	genFlags.register(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// generator holds what one or more generate runs over a root need
type generator struct {
	root  string
	store *sqlite.Store
	cmd   *commands.GenerateCommand
}

func newGenerator(cmd *cobra.Command, root string, f *generateFlags) (*generator, error) {
	summarizer, err := service.NewSummarizer(cfg, verbose)
	if err != nil {
		return nil, err
	}

	g := &generator{root: root}
	if !f.noCache {
		if g.store, err = service.OpenStore(cfg, root); err != nil {
			return nil, err
		}
	}

	var ledger ports.RunLedger
	if g.store != nil {
		ledger = g.store
	}
	ix := service.NewIndexer(cfg, f.options(cmd), summarizer, g.store, logger)
	g.cmd = commands.NewGenerateCommand(ix, ledger, root)
	return g, nil
}

func (g *generator) run(ctx context.Context) error {
	result, err := g.cmd.Execute(ctx)
	if err != nil {
		return err
	}

	run := result.Run
	fmt.Printf("Indexed %s in %s: %d directories written, %d skipped, %d files summarized, %d from cache\n",
		run.Root, run.Duration.Round(time.Millisecond), run.DirsWritten, run.DirsSkipped, run.FilesIndexed, run.FilesCached)

	if g.store != nil {
		pruned, err := g.store.PruneMissing(ctx)
		if err != nil {
			return fmt.Errorf("failed to prune cache: %w", err)
		}
		if pruned > 0 && logger != nil {
			logger.Printf("pruned %d cached summaries of deleted files", pruned)
		}
	}
	return nil
}

func (g *generator) Close() error {
	if g.store != nil {
		return g.store.Close()
	}
	return nil
}
