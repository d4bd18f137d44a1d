// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides argument parsing and command handlers for the
// quill binary's non-interactive subcommands. The default (no
// subcommand) path launches the TUI from main.
package cli
