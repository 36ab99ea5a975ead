package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"indexmd/internal/adapters/editor"
	"indexmd/internal/adapters/obsidian"
	"indexmd/internal/adapters/tui"
	"indexmd/internal/config"
	"indexmd/internal/service"
)

func main() {
	rootFlag := flag.String("root", config.RootPath(), "source root to search")
	vaultFlag := flag.String("vault", "", "Obsidian vault name (default: the root's directory name)")
	editorFlag := flag.String("editor", "", "editor command (default $VISUAL or $EDITOR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root, err := filepath.Abs(*rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(
		service.NewTree(cfg),
		root,
		editor.NewOpener(*editorFlag),
		obsidian.NewOpener(root, *vaultFlag),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
