// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/quill-tui/internal/commands"
	"github.com/jeranaias/quill-tui/internal/history"
	"github.com/jeranaias/quill-tui/internal/model"
	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/pipeline"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateThinking               // Waiting for an assistant reply
	StateExporting              // Export pipeline running
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Conversation
	conversation *model.Conversation

	// Backends
	generator   nlu.Generator
	coordinator *pipeline.Coordinator
	store       *history.Store // may be nil when history is disabled

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering of assistant replies; nil disables preview
	markdown *glamour.TermRenderer

	// Command system
	parser *commands.Parser

	// Key bindings
	keyMap KeyMap

	// Transient footer notice (errors, hints)
	notice string

	thinkingStart time.Time
	showHelp      bool
}

// Options configures the chat model.
type Options struct {
	Generator   nlu.Generator
	Coordinator *pipeline.Coordinator
	Store       *history.Store
	// ShowPreview enables glamour markdown rendering of assistant replies.
	ShowPreview bool
}

// New creates a new chat model.
func New(theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Chat, or /export <instruction> to export the last reply..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	var markdown *glamour.TermRenderer
	if opts.ShowPreview {
		// Best effort; plain text when the renderer cannot be built.
		markdown, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(72),
		)
	}

	m := Model{
		state:        StateReady,
		theme:        theme,
		conversation: model.NewConversation(),
		generator:    opts.Generator,
		coordinator:  opts.Coordinator,
		store:        opts.Store,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		markdown:     markdown,
		parser:       commands.NewParser(commands.NewRegistry()),
		keyMap:       DefaultKeyMap(),
	}
	m.updateViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Conversation exposes the transcript, used by tests.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}
