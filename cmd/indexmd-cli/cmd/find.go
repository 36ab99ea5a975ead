package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"indexmd/internal/application/commands"
	"indexmd/internal/service"
)

var (
	findTerm string
	findTags []string
	findJSON bool
)

var findCmd = &cobra.Command{
	Use:   "find [root]",
	Short: "Search the generated indexes",
	Long: `Find lists the directories below the root whose .Index.md body contains
the term (case-sensitive) or whose .index.json tags contain any of the tags.

Examples:
  indexmd-cli find . -s parser
  indexmd-cli find . -t cli,parsing
  indexmd-cli find . -s Token -t lexer --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootArg(args)

		result, err := commands.NewFindCommand(service.NewTree(cfg), root, findTerm, findTags).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if findJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Matches)
		}

		if len(result.Matches) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, m := range result.Matches {
			rel, err := filepath.Rel(root, m.Path)
			if err != nil {
				rel = m.Path
			}
			fmt.Printf("[%s] %s\n", m.Source, rel)
		}
		return nil
	},
}

func init() {
	findCmd.Flags().StringVarP(&findTerm, "term", "s", "", "text to look for in index bodies")
	findCmd.Flags().StringSliceVarP(&findTags, "tags", "t", nil, "tags to look for (repeatable or comma separated)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "print matches as JSON")
	rootCmd.AddCommand(findCmd)
}
