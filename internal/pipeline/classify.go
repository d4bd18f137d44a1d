// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"fmt"

	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/registry"
)

// ===== INTENT CLASSIFIER =====

// Classifier turns a free-form instruction into a validated export
// decision. The judge's format string is checked against the registry:
// anything it names outside the closed set is treated as "no preference",
// never passed through.
type Classifier struct {
	judge nlu.Judge
}

func NewClassifier(judge nlu.Judge) *Classifier {
	return &Classifier{judge: judge}
}

// Classify reports whether the instruction asks for an export and, when it
// does, which format it named. The returned tag is empty when the judgment
// expressed no recognizable preference; callers resolve that through the
// router. A judge failure is returned as-is: intent is never guessed.
func (c *Classifier) Classify(ctx context.Context, instruction string) (bool, registry.FormatTag, error) {
	judgment, err := c.judge.ClassifyIntent(ctx, instruction)
	if err != nil {
		return false, "", fmt.Errorf("classify intent: %w", err)
	}
	if !judgment.ExportRequested {
		return false, "", nil
	}
	tag, ok := registry.ParseFormat(judgment.Format)
	if !ok {
		// Unknown or absent format. The export still proceeds; the
		// router falls back to the default.
		return true, "", nil
	}
	return true, tag, nil
}
