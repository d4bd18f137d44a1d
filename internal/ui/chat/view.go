// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/quill-tui/internal/model"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting quill..."
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render(m.theme.HeaderBrand.Render("quill") + "  instruction-driven document export"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.helpView())
		b.WriteString("\n")
	}

	b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m Model) statusView() string {
	switch m.state {
	case StateThinking:
		elapsed := time.Since(m.thinkingStart).Round(time.Second)
		return m.theme.StatusBar.Render(fmt.Sprintf("%s thinking... %s", m.spinner.View(), elapsed))
	case StateExporting:
		return m.theme.StatusBar.Render(fmt.Sprintf("%s %s", m.spinner.View(),
			m.theme.ExportPending.Render("exporting...")))
	}

	hints := fmt.Sprintf("%d msgs  %s export  %s help  %s quit",
		m.conversation.MessageCount(),
		m.theme.ShortcutKey.Render("C-e"),
		m.theme.ShortcutKey.Render("C-h"),
		m.theme.ShortcutKey.Render("C-c"))
	if m.notice != "" {
		hints = m.theme.ExportFailed.Render(m.notice) + "  " + hints
	}
	return m.theme.StatusBar.Render(hints)
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range m.parser.Registry().All() {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.theme.HelpCommand.Render(fmt.Sprintf("%-10s", cmd.Name)),
			m.theme.HelpDesc.Render(cmd.Description)))
	}
	b.WriteString(fmt.Sprintf("  %s  export the last reply with the current input as instruction",
		m.theme.HelpCommand.Render(fmt.Sprintf("%-10s", "Ctrl+E"))))
	return m.theme.HelpBox.Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// welcomeText fills the transcript before the first message and again
// after /clear empties it.
const welcomeText = "Welcome to quill. Chat with the model, then ask to export: try \"Export this as a PDF\"."

// updateViewport re-renders the transcript and follows the tail.
func (m *Model) updateViewport() {
	if m.conversation.IsEmpty() {
		m.viewport.SetContent(m.theme.SystemBubble.Render(welcomeText))
		return
	}

	var b strings.Builder
	for _, msg := range m.conversation.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) renderMessage(msg *model.Message) string {
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.RoleUser:
		return fmt.Sprintf("%s %s\n%s", ts, msg.Role.DisplayName(),
			m.theme.UserBubble.Render(msg.Content))

	case model.RoleAssistant:
		content := msg.Content
		if m.markdown != nil {
			if rendered, err := m.markdown.Render(content); err == nil {
				content = strings.TrimSpace(rendered)
			}
		}
		return fmt.Sprintf("%s %s\n%s", ts, msg.Role.DisplayName(),
			m.theme.AssistantBubble.Render(content))

	default:
		body := msg.Content
		if msg.Artifact != nil {
			body = m.theme.ExportDone.Render(msg.Content) + "\n" +
				m.theme.ArtifactPath.Render(msg.Artifact.Path)
		}
		return m.theme.SystemBubble.Render(body)
	}
}
