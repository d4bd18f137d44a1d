// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records finished exports in a local SQLite database so
// the /history command and the CLI can list what was produced, when, and
// from which instruction. One database per quill home directory; rows are
// append-only apart from pruning.
package history
