// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"github.com/jeranaias/quill-tui/internal/registry"
	"github.com/jeranaias/quill-tui/internal/render"
)

// ===== PIPELINE STATE =====

// Stage marks how far a run has progressed. The coordinator advances it
// monotonically; it never moves backwards within a run.
type Stage string

const (
	StageStart      Stage = "start"
	StageNormalized Stage = "normalized"
	StageClassified Stage = "classified"
	StageFormatted  Stage = "formatted"
	StageRendered   Stage = "rendered"
	StageDone       Stage = "done"
)

// State carries everything a run accumulates. Write-once by convention:
// every field below Stage is populated by exactly one stage and treated as
// immutable afterwards.
type State struct {
	Stage Stage

	// Inputs, set before the first stage runs.
	RawText     string
	Instruction string

	// Normalizer output. Identical to RawText when no filler was found.
	NormalizedText string

	// Classifier output. TargetFormat stays empty when the judgment named
	// no format (or an unknown one); the router resolves that to the
	// default downstream.
	ExportRequested bool
	TargetFormat    registry.FormatTag

	// Extractor output. Total over the routed format's attribute spec.
	Attributes registry.AttributeMap

	// Renderer output. Nil when the run exited early without exporting.
	Artifact *render.ArtifactDescriptor
}
