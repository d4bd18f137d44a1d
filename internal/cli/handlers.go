// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/history"
	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/pipeline"
	"github.com/jeranaias/quill-tui/internal/registry"
	"github.com/jeranaias/quill-tui/internal/render"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// App bundles the composed backend used by both the CLI handlers and the
// TUI entry point.
type App struct {
	Config      *config.Config
	Judge       nlu.Judge
	Generator   nlu.Generator
	Coordinator *pipeline.Coordinator
	Store       *history.Store // nil when history is disabled
}

// NewApp composes the judge, renderer table, history store, and
// coordinator from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	var judge nlu.Judge
	var generator nlu.Generator

	switch strings.ToLower(cfg.NLU.Backend) {
	case "openrouter":
		j := nlu.NewOpenRouterJudge(&nlu.OpenRouterConfig{
			APIKey: cfg.OpenRouter.APIKey,
			Model:  cfg.OpenRouter.Model,
		})
		judge, generator = j, j
	default:
		j := nlu.NewOllamaJudge(&nlu.OllamaConfig{
			BaseURL:           cfg.Ollama.URL,
			Model:             cfg.Ollama.Model,
			Timeout:           time.Duration(cfg.Ollama.TimeoutSecs) * time.Second,
			RequestsPerSecond: cfg.Ollama.RequestsPerSecond,
		})
		judge, generator = j, j
	}

	exportDir, err := cfg.ExportDir()
	if err != nil {
		return nil, err
	}
	table, err := render.NewTable(render.NewNamer(exportDir))
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if cfg.History.Enabled {
		path, err := cfg.HistoryPath()
		if err != nil {
			return nil, err
		}
		store, err = history.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		if cfg.History.KeepDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -cfg.History.KeepDays)
			if _, err := store.Prune(cutoff); err != nil {
				log.Printf("history: prune failed: %v", err)
			}
		}
	}

	opts := pipeline.Options{
		OpenAfterExport: cfg.General.OpenAfterExport,
		DefaultFormat:   cfg.DefaultFormatTag(),
	}
	if store != nil {
		opts.Recorder = store
	}

	return &App{
		Config:      cfg,
		Judge:       judge,
		Generator:   generator,
		Coordinator: pipeline.New(judge, table, opts),
		Store:       store,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleExport runs one pipeline pass over the input file and prints the
// artifact path.
func HandleExport(app *App, args Args) error {
	if strings.TrimSpace(args.Instruction) == "" {
		return fmt.Errorf("export: --instruction is required")
	}

	var raw []byte
	var err error
	if args.In == "" || args.In == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(args.In)
	}
	if err != nil {
		return fmt.Errorf("export: read input: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("export: input is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	state, err := app.Coordinator.RunNamed(ctx, string(raw), args.Instruction, args.Name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if !state.ExportRequested {
		return fmt.Errorf("export: instruction %q does not request an export", args.Instruction)
	}

	fmt.Printf("Exported %s (%d bytes): %s\n", state.Artifact.Format, state.Artifact.Size, state.Artifact.Path)
	return nil
}

// HandleHistory prints recent exports.
func HandleHistory(app *App, args Args) error {
	if app.Store == nil {
		return fmt.Errorf("history: disabled in configuration")
	}
	entries, err := app.Store.Recent(args.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No exports yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-4s  %8d  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Format, e.Size, e.Path)
	}
	return nil
}

// HandleFormats prints the registry: formats, attributes, domains,
// defaults.
func HandleFormats() {
	for _, tag := range registry.Formats() {
		spec, err := registry.SpecFor(tag)
		if err != nil {
			continue
		}
		suffix := ""
		if tag == registry.DefaultFormat {
			suffix = " (default)"
		}
		fmt.Printf("%s%s\n", tag, suffix)
		for _, name := range spec.Names() {
			attr := spec.Attributes[name]
			fmt.Printf("  %-16s %s (default %v)\n", name, attr.Domain.Describe(), attr.Default)
		}
	}
}
