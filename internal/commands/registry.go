// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/export")
	Name string

	// Aliases are alternative names (e.g., "/e")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/export [instruction]")
	Usage string

	// Handler builds the tea command for this invocation
	Handler func(args []string, rawArgs string) tea.Cmd
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Handler: func(_ []string, _ string) tea.Cmd {
			return emit(ShowHelpMsg{})
		},
	})

	r.Register(&Command{
		Name:        "/export",
		Aliases:     []string{"/e"},
		Description: "Export the last assistant message as a document",
		Usage:       "/export [instruction]",
		Handler: func(_ []string, rawArgs string) tea.Cmd {
			instruction := rawArgs
			if strings.TrimSpace(instruction) == "" {
				instruction = "Export this"
			}
			return emit(ExportRequestMsg{Instruction: instruction})
		},
	})

	r.Register(&Command{
		Name:        "/history",
		Description: "List recent exports",
		Usage:       "/history [count]",
		Handler: func(args []string, _ string) tea.Cmd {
			limit := 0
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
					limit = n
				}
			}
			return emit(ShowHistoryMsg{Limit: limit})
		},
	})

	r.Register(&Command{
		Name:        "/formats",
		Description: "Show supported export formats and their attributes",
		Handler: func(_ []string, _ string) tea.Cmd {
			return emit(ShowFormatsMsg{})
		},
	})

	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/new"},
		Description: "Clear the conversation",
		Handler: func(_ []string, _ string) tea.Cmd {
			return emit(ClearConversationMsg{})
		},
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit quill",
		Handler: func(_ []string, _ string) tea.Cmd {
			return tea.Quit
		},
	})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
