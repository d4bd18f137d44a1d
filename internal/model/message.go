// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/quill-tui/internal/render"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Artifact is set on system messages that announce a finished export.
	Artifact *render.ArtifactDescriptor `json:"artifact,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewSystemMessage creates a system notice shown inline in the chat.
func NewSystemMessage(content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewExportNotice creates the system message announcing an export.
func NewExportNotice(content string, artifact *render.ArtifactDescriptor) *Message {
	msg := NewSystemMessage(content)
	msg.Artifact = artifact
	return msg
}

// generateMessageID creates a unique message ID.
func generateMessageID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "msg_" + hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return "msg_" + hex.EncodeToString(b)
}
