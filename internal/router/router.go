// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router maps a classified target format onto the renderer to
// invoke. It is a pure, total function: every input produces a renderer
// tag, and ambiguous classifications land on a single documented default
// rather than an error.
package router

import (
	"github.com/jeranaias/quill-tui/internal/registry"
)

// Route selects the renderer for a classified target format.
//
// An empty or unrecognized target routes to the caller's fallback, which
// is where the configured default format enters the pipeline. An invalid
// fallback degrades to registry.DefaultFormat so the function stays
// total: repeated calls with the same inputs always pick the same
// renderer, never an error.
//
// Route is never reached when export was not requested; the pipeline
// coordinator terminates before routing in that case.
func Route(target, fallback registry.FormatTag) registry.FormatTag {
	if _, err := registry.SpecFor(target); err == nil {
		return target
	}
	if _, err := registry.SpecFor(fallback); err == nil {
		return fallback
	}
	return registry.DefaultFormat
}
