// quill TUI - chat with a local LLM and export replies as documents.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/cli"
	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/ui/chat"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion()
		return
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	case cli.CmdFormats:
		cli.HandleFormats()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	switch cmd {
	case cli.CmdExport:
		if err := cli.HandleExport(app, args); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}

	case cli.CmdHistory:
		if err := cli.HandleHistory(app, args); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}

	default:
		runTUI(app)
	}
}

func runTUI(app *cli.App) {
	m := chat.New(styles.NewTheme(), chat.Options{
		Generator:   app.Generator,
		Coordinator: app.Coordinator,
		Store:       app.Store,
		ShowPreview: app.Config.UI.ShowPreview,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}
