package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"indexmd/internal/adapters/watcher"
)

var (
	watchFlags    generateFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Regenerate indexes whenever the source tree changes",
	Long: `Watch runs generate once, then again after every burst of changes below
the root. Writes of the index sidecars themselves are ignored. Stop with
Ctrl+C.

Examples:
  indexmd-cli watch .
  indexmd-cli watch . --debounce 5s --toc`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootArg(args)

		g, err := newGenerator(cmd, root, &watchFlags)
		if err != nil {
			return err
		}
		defer g.Close()

		ctx := cmd.Context()
		if err := g.run(ctx); err != nil {
			return err
		}

		w := watcher.New(root,
			watcher.WithDebounce(watchDebounce),
			watcher.WithHidden(cfg.IncludeHidden),
			watcher.WithLogger(logger),
		)
		fmt.Printf("Watching %s (Ctrl+C to stop)\n", root)
		return w.Run(ctx, func(ctx context.Context) error {
			return g.run(ctx)
		})
	},
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}
