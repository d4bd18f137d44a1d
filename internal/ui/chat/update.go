// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/commands"
	"github.com/jeranaias/quill-tui/internal/registry"
)

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// chatReplyMsg carries an assistant reply (or the failure to get one).
type chatReplyMsg struct {
	content string
	err     error
}

// historyListMsg carries the export history for display.
type historyListMsg struct {
	lines []string
	err   error
}

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state == StateReady {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case chatReplyMsg:
		return m.handleChatReply(msg)

	case exportResultMsg:
		return m.handleExportResult(msg)

	case historyListMsg:
		return m.handleHistoryList(msg)

	case commands.ExportRequestMsg:
		return m.startExport(msg.Instruction)

	case commands.ShowHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case commands.ShowHistoryMsg:
		return m, m.loadHistory(msg.Limit)

	case commands.ShowFormatsMsg:
		m.conversation.AddSystemNotice(formatsNotice())
		m.updateViewport()
		return m, nil

	case commands.ClearConversationMsg:
		m.conversation.Clear()
		m.notice = "Conversation cleared."
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width - 2
	m.viewport.Height = msg.Height - 6
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = msg.Width - 6
	m.ready = true
	m.updateViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		instruction := strings.TrimSpace(m.input.Value())
		if instruction == "" {
			instruction = "Export this"
		}
		m.input.SetValue("")
		return m.startExport(instruction)

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.state != StateReady {
		return m, nil
	}
	m.input.SetValue("")
	m.notice = ""

	if commands.IsCommand(input) {
		result := m.parser.Parse(input)
		if result.Command == nil {
			m.conversation.AddSystemNotice(fmt.Sprintf("Unknown command %s. Try /help.", result.CommandName))
			m.updateViewport()
			return m, nil
		}
		return m, result.Command.Handler(result.Args, result.RawArgs)
	}

	return m.startChat(input)
}

// =============================================================================
// CHAT GENERATION
// =============================================================================

func (m Model) startChat(input string) (tea.Model, tea.Cmd) {
	m.conversation.AddUserMessage(input)
	m.updateViewport()

	if m.generator == nil {
		m.conversation.AddSystemNotice("No model backend configured; chat is disabled. /export still works on pasted text.")
		m.updateViewport()
		return m, nil
	}

	m.state = StateThinking
	m.thinkingStart = time.Now()

	gen := m.generator
	msgs := conversationMessages(m.conversation)
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		content, err := gen.Chat(chatContext(), msgs)
		return chatReplyMsg{content: content, err: err}
	})
}

func (m Model) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	if msg.err != nil {
		m.notice = fmt.Sprintf("chat failed: %v", msg.err)
		m.conversation.AddSystemNotice(m.notice)
	} else {
		m.conversation.AddAssistantMessage(msg.content)
	}
	m.updateViewport()
	return m, nil
}

// =============================================================================
// HISTORY AND FORMAT LISTINGS
// =============================================================================

func (m Model) loadHistory(limit int) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return historyListMsg{err: fmt.Errorf("export history is disabled")}
		}
		entries, err := store.Recent(limit)
		if err != nil {
			return historyListMsg{err: err}
		}
		if len(entries) == 0 {
			return historyListMsg{lines: []string{"No exports yet."}}
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = fmt.Sprintf("%s  %-4s  %s", e.CreatedAt.Format("2006-01-02 15:04"), e.Format, e.Path)
		}
		if total, err := store.Count(); err == nil && total > len(entries) {
			lines = append(lines, fmt.Sprintf("(%d recorded in total)", total))
		}
		return historyListMsg{lines: lines}
	}
}

func (m Model) handleHistoryList(msg historyListMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.conversation.AddSystemNotice(fmt.Sprintf("history: %v", msg.err))
	} else {
		m.conversation.AddSystemNotice("Recent exports:\n" + strings.Join(msg.lines, "\n"))
	}
	m.updateViewport()
	return m, nil
}

func formatsNotice() string {
	var b strings.Builder
	b.WriteString("Supported formats:\n")
	for _, tag := range registry.Formats() {
		spec, err := registry.SpecFor(tag)
		if err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", tag, strings.Join(spec.Names(), ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}
