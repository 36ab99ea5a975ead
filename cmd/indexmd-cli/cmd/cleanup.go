package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"indexmd/internal/application/commands"
	"indexmd/internal/ports"
	"indexmd/internal/service"
)

var (
	cleanupJSON  bool
	cleanupCache bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [root]",
	Short: "Remove generated .Index.md files below a root",
	Long: `Cleanup removes the .Index.md of every directory below the root. The
root's own index is kept.

Examples:
  indexmd-cli cleanup .
  indexmd-cli cleanup . --json --cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootArg(args)

		var cache ports.FileCache
		if cleanupCache {
			store, err := service.OpenStore(cfg, root)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				cache = store
			}
		}

		result, err := commands.NewCleanupCommand(service.NewTree(cfg), cache, root, cleanupJSON, cleanupCache).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Cleaned %d directories: %d .Index.md and %d .index.json removed\n",
			result.Dirs, result.MarkdownRemoved, result.JSONRemoved)
		if cleanupCache {
			fmt.Printf("Purged %d cached file summaries\n", result.CachePurged)
		}
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupJSON, "json", false, "also remove .index.json sidecars")
	cleanupCmd.Flags().BoolVar(&cleanupCache, "cache", false, "purge cached file summaries below the root")
	rootCmd.AddCommand(cleanupCmd)
}
