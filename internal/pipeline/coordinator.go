// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/registry"
	"github.com/jeranaias/quill-tui/internal/render"
	"github.com/jeranaias/quill-tui/internal/router"
)

// ===== COORDINATOR =====

// Recorder persists a finished export. The history store implements it;
// tests substitute their own.
type Recorder interface {
	Record(artifact *render.ArtifactDescriptor, instruction string) error
}

// Options tunes coordinator behavior outside the core stage sequence.
type Options struct {
	// Recorder receives every successful export. Optional; a recording
	// failure is logged, never fatal, the artifact already exists on disk.
	Recorder Recorder

	// OpenAfterExport hands the finished artifact to the OS default
	// application. Advisory: a headless box failing to open a file does
	// not fail the run.
	OpenAfterExport bool

	// DefaultFormat is the route taken when the instruction names no
	// format. Empty or invalid falls back to registry.DefaultFormat.
	DefaultFormat registry.FormatTag

	// Logger for stage diagnostics. Nil means standard logger.
	Logger *log.Logger
}

// Coordinator runs the export pipeline. Safe for sequential reuse; each
// Run threads a fresh State and shares nothing with previous runs.
type Coordinator struct {
	classifier *Classifier
	extractor  *Extractor
	table      *render.Table
	recorder   Recorder
	openAfter  bool
	defFormat  registry.FormatTag
	logger     *log.Logger
}

func New(judge nlu.Judge, table *render.Table, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		classifier: NewClassifier(judge),
		extractor:  NewExtractor(judge, logger.Printf),
		table:      table,
		recorder:   opts.Recorder,
		openAfter:  opts.OpenAfterExport,
		defFormat:  opts.DefaultFormat,
		logger:     logger,
	}
}

// Run executes the full stage sequence for one (text, instruction) pair.
// When the instruction does not ask for an export the returned state has
// ExportRequested false and a nil Artifact, and that is not an error.
func (c *Coordinator) Run(ctx context.Context, rawText, instruction string) (State, error) {
	return c.RunNamed(ctx, rawText, instruction, "")
}

// RunNamed is Run with a caller-chosen base name for the artifact file.
func (c *Coordinator) RunNamed(ctx context.Context, rawText, instruction, customName string) (State, error) {
	s := State{Stage: StageStart, RawText: rawText, Instruction: instruction}

	s.NormalizedText = Normalize(s.RawText)
	s.Stage = StageNormalized

	requested, target, err := c.classifier.Classify(ctx, s.Instruction)
	if err != nil {
		return s, err
	}
	s.ExportRequested = requested
	s.TargetFormat = target
	s.Stage = StageClassified

	if !s.ExportRequested {
		s.Stage = StageDone
		return s, nil
	}

	// The extractor needs a concrete spec even when the instruction named
	// no format, so the default route is resolved here, once, and reused
	// for rendering. Route is pure; both reads agree.
	routed := router.Route(s.TargetFormat, c.defFormat)

	s.Attributes, err = c.extractor.Extract(ctx, s.Instruction, routed)
	if err != nil {
		return s, err
	}
	s.Stage = StageFormatted

	doc := render.SplitDocument(s.NormalizedText)
	s.Artifact, err = c.table.RenderToFile(routed, doc, s.Attributes, customName)
	if err != nil {
		return s, fmt.Errorf("render %s: %w", routed, err)
	}
	s.Stage = StageRendered

	c.notify(&s)
	s.Stage = StageDone
	return s, nil
}

// notify records the artifact and optionally opens it. Both are best
// effort: the export itself has already succeeded.
func (c *Coordinator) notify(s *State) {
	if c.recorder != nil {
		if err := c.recorder.Record(s.Artifact, s.Instruction); err != nil {
			c.logger.Printf("history: recording export failed: %v", err)
		}
	}
	if c.openAfter {
		if err := render.OpenArtifact(s.Artifact.Path); err != nil {
			c.logger.Printf("open: %s: %v", s.Artifact.Path, err)
		}
	}
}
