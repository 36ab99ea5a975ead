package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"indexmd/internal/application/commands"
	"indexmd/internal/domain"
	"indexmd/internal/service"
)

var (
	showRaw   bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Render the .Index.md of a directory",
	Long: `Show prints the tags, generation time and rendered summary of one
directory's .Index.md.

Examples:
  indexmd-cli show internal/parser
  indexmd-cli show . --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowCommand(service.NewTree(cfg), rootArg(args)).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if ts := result.FrontMatter.Timestamp; ts != nil {
			fmt.Printf("generated: %s\n", domain.FormatTimestamp(*ts))
		}
		if len(result.FrontMatter.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(result.FrontMatter.Tags, ", "))
		}
		fmt.Println()

		if showRaw {
			fmt.Println(result.Body)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(showWidth),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := renderer.Render(result.Body)
		if err != nil {
			return fmt.Errorf("failed to render index: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the markdown without rendering")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "wrap width for rendered output")
	rootCmd.AddCommand(showCmd)
}
