// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
//
// Commands are parsed from chat input, matched against a registry, and
// executed as bubbletea commands that emit typed messages back to the
// chat model. Handlers never touch application state directly.
package commands
