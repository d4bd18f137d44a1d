// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the quill TUI.
//
// The view is a single Bubble Tea model: a viewport transcript, a text
// input, and a status bar. Typing chats with the model; Ctrl+E or the
// /export command runs the export pipeline over the last assistant reply.
// Pipeline and generation work runs in tea commands so the UI never
// blocks on the network.
package chat
