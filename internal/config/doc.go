// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for quill.
//
// TOML with sensible defaults, environment variable overrides, and
// validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.quill/config.toml
//   - Built-in defaults
package config
