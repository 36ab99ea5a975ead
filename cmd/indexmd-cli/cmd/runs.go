package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"indexmd/internal/application/commands"
	"indexmd/internal/service"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [root]",
	Short: "List recent generate runs",
	Long: `Runs lists the most recent generate runs over the root, newest first,
from the cache database.

Examples:
  indexmd-cli runs .
  indexmd-cli runs . --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := service.OpenStore(cfg, rootArg(args))
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("run history needs the cache; enable it with cache = true")
		}
		defer store.Close()

		runs, err := commands.NewRunsCommand(store, runsLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tDURATION\tWRITTEN\tSKIPPED\tFILES\tCACHED\tID")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.Duration.Round(time.Millisecond),
				r.DirsWritten, r.DirsSkipped, r.FilesIndexed, r.FilesCached, r.ID)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", commands.DefaultRunsLimit, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
