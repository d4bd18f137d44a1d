// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/model"
	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/pipeline"
)

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// exportResultMsg carries a finished pipeline run back to the UI.
type exportResultMsg struct {
	state pipeline.State
	err   error
}

// startExport runs the export pipeline over the last assistant reply.
func (m Model) startExport(instruction string) (tea.Model, tea.Cmd) {
	if m.state != StateReady {
		return m, nil
	}

	raw := m.conversation.LastAssistantContent()
	if raw == "" {
		m.conversation.AddSystemNotice("Nothing to export yet: there is no assistant reply.")
		m.updateViewport()
		return m, nil
	}
	if m.coordinator == nil {
		m.conversation.AddSystemNotice("Export pipeline is not configured.")
		m.updateViewport()
		return m, nil
	}

	m.state = StateExporting
	m.thinkingStart = time.Now()
	m.conversation.AddSystemNotice(fmt.Sprintf("Exporting: %q ...", instruction))
	m.updateViewport()

	coord := m.coordinator
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		state, err := coord.Run(ctx, raw, instruction)
		return exportResultMsg{state: state, err: err}
	})
}

// handleExportResult appends the outcome as a system notice.
func (m Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady

	switch {
	case msg.err != nil:
		m.conversation.AddSystemNotice(fmt.Sprintf("[FAIL] Export failed: %v", msg.err))

	case !msg.state.ExportRequested:
		m.conversation.AddSystemNotice("That instruction did not ask for an export, so nothing was written.")

	default:
		artifact := msg.state.Artifact
		notice := model.NewExportNotice(
			fmt.Sprintf("[OK] Exported %s (%d bytes): %s", artifact.Format, artifact.Size, artifact.Path),
			artifact,
		)
		m.conversation.AddMessage(notice)
	}

	m.updateViewport()
	return m, nil
}

// =============================================================================
// GENERATION HELPERS
// =============================================================================

// conversationMessages converts the transcript for the generator,
// dropping system notices, which are UI chrome rather than dialogue.
func conversationMessages(c *model.Conversation) []nlu.ChatMessage {
	msgs := make([]nlu.ChatMessage, 0, len(c.Messages))
	for _, msg := range c.Messages {
		if msg.Role == model.RoleSystem {
			continue
		}
		msgs = append(msgs, nlu.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return msgs
}

func chatContext() context.Context {
	return context.Background()
}
