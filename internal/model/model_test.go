// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"testing"
)

func TestConversationFlow(t *testing.T) {
	c := NewConversation()
	if !c.IsEmpty() {
		t.Error("new conversation not empty")
	}

	c.AddUserMessage("Write a summary of Q3")
	c.AddAssistantMessage("Q3 Summary\n\nRevenue grew.")
	c.AddUserMessage("Export as PDF")

	if c.MessageCount() != 3 {
		t.Errorf("count = %d", c.MessageCount())
	}
	if got := c.LastAssistantContent(); got != "Q3 Summary\n\nRevenue grew." {
		t.Errorf("last assistant = %q", got)
	}
}

func TestLastAssistantContentEmpty(t *testing.T) {
	c := NewConversation()
	c.AddUserMessage("hello")
	if got := c.LastAssistantContent(); got != "" {
		t.Errorf("got %q from conversation with no assistant messages", got)
	}
}

func TestTitleFromFirstUserMessage(t *testing.T) {
	c := NewConversation()
	c.AddSystemNotice("welcome")
	c.AddUserMessage("Draft the launch plan\nwith three phases")
	if c.Title != "Draft the launch plan" {
		t.Errorf("title = %q", c.Title)
	}

	// Title is sticky.
	c.AddUserMessage("Something else entirely")
	if c.Title != "Draft the launch plan" {
		t.Errorf("title changed to %q", c.Title)
	}
}

func TestClear(t *testing.T) {
	c := NewConversation()
	c.AddUserMessage("hello")
	c.AddAssistantMessage("hi")
	c.Clear()

	if !c.IsEmpty() || c.Title != "" {
		t.Errorf("clear left state: %d messages, title %q", c.MessageCount(), c.Title)
	}
	if c.LastAssistantContent() != "" {
		t.Error("assistant content survived clear")
	}
}

func TestPruneOldMessages(t *testing.T) {
	c := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		c.AddUserMessage(fmt.Sprintf("message %d", i))
	}
	if c.MessageCount() != MaxMessages {
		t.Errorf("count = %d, want %d", c.MessageCount(), MaxMessages)
	}
	// Oldest messages went first.
	if c.Messages[0].Content != "message 10" {
		t.Errorf("head = %q", c.Messages[0].Content)
	}
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate ID %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestExportNotice(t *testing.T) {
	msg := NewExportNotice("Exported to /tmp/a.docx", nil)
	if msg.Role != RoleSystem {
		t.Errorf("role = %q", msg.Role)
	}
	if msg.Role.DisplayName() != "System" {
		t.Errorf("display = %q", msg.Role.DisplayName())
	}
}
