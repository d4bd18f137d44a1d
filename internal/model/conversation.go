// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/quill-tui/internal/util"
)

// MaxMessages is the maximum number of messages kept in memory. When
// exceeded, old messages are pruned to prevent unbounded growth.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the in-memory chat transcript. It is not persisted;
// quill records exports, not conversations.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []*Message
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        generateConversationID(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message and maintains title and bounds.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	c.pruneOldMessages()
}

// AddUserMessage creates and adds a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and adds an assistant message.
func (c *Conversation) AddAssistantMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddSystemNotice creates and adds an inline system notice.
func (c *Conversation) AddSystemNotice(content string) *Message {
	msg := NewSystemMessage(content)
	c.AddMessage(msg)
	return msg
}

// LastAssistantContent returns the content of the newest assistant
// message, or empty when there is none yet. This is the text the export
// pipeline runs over.
func (c *Conversation) LastAssistantContent() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i].Content
		}
	}
	return ""
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether no messages have been added.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear resets the transcript, keeping the conversation identity.
func (c *Conversation) Clear() {
	c.Messages = c.Messages[:0]
	c.Title = ""
	c.UpdatedAt = time.Now()
}

// updateTitle derives the title from the first user message.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = util.Truncate(util.FirstLine(msg.Content), 48)
			return
		}
	}
}

// pruneOldMessages drops the oldest messages past MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	c.Messages = append(c.Messages[:0:0], c.Messages[excess:]...)
}

// generateConversationID creates a unique conversation ID.
func generateConversationID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "conv_" + hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return "conv_" + hex.EncodeToString(b)
}
