// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/quill-tui/internal/nlu"
	"github.com/jeranaias/quill-tui/internal/registry"
)

// ===== FORMATTING EXTRACTOR =====

// Extractor asks the judge for formatting attributes mentioned in the
// instruction and reconciles the answer with the target format's registry
// spec. Its output is always total over the spec: every declared attribute
// is present, in-domain, with the registry default filling anything the
// instruction left unset or got wrong.
type Extractor struct {
	judge nlu.Judge
	logf  func(format string, args ...any)
}

func NewExtractor(judge nlu.Judge, logf func(string, ...any)) *Extractor {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Extractor{judge: judge, logf: logf}
}

// Extract returns the validated attribute map for the instruction under
// the given format. Judge failures propagate; validation problems never
// do, they degrade to defaults.
func (e *Extractor) Extract(ctx context.Context, instruction string, format registry.FormatTag) (registry.AttributeMap, error) {
	spec, err := registry.SpecFor(format)
	if err != nil {
		return nil, fmt.Errorf("extract formatting: %w", err)
	}

	hints := make([]nlu.AttributeHint, 0, len(spec.Attributes))
	for _, name := range spec.Names() {
		attr := spec.Attributes[name]
		hints = append(hints, nlu.AttributeHint{
			Name:        name,
			Description: attr.Description + "; " + attr.Domain.Describe(),
		})
	}

	raw, err := e.judge.ExtractFormatting(ctx, instruction, string(format), hints)
	if err != nil {
		return nil, fmt.Errorf("extract formatting: %w", err)
	}

	attrs := spec.Defaults()
	for key, value := range raw {
		name := canonicalAttrName(key)
		attr, ok := spec.Attributes[name]
		if !ok {
			e.logf("extract: dropping unknown attribute %q for %s", key, format)
			continue
		}
		canonical, ok := attr.Domain.Validate(value)
		if !ok {
			e.logf("extract: %s=%v out of domain (%s), using default %v",
				name, value, attr.Domain.Describe(), attr.Default)
			continue
		}
		attrs[name] = canonical
	}
	return attrs, nil
}

// attrNameAliases folds judged key synonyms onto registry names after
// snake-casing. Kept short: only spellings observed from real models.
var attrNameAliases = map[string]string{
	"font_size":      "size",
	"font_name":      "font",
	"font_family":    "font",
	"typeface":       "font",
	"align":          "alignment",
	"justification":  "alignment",
	"text_alignment": "alignment",
	"spacing":        "line_spacing",
	"linespacing":    "line_spacing",
	"heading_size":   "title_size",
}

// canonicalAttrName folds the key spellings models actually produce
// ("fontSize", "Line Spacing") onto registry names.
func canonicalAttrName(key string) string {
	key = strings.TrimSpace(key)
	var b strings.Builder
	for i, r := range key {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				prev := key[i-1]
				if prev != '_' && prev != ' ' && prev != '-' {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '-':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), "_")
	if canonical, ok := attrNameAliases[name]; ok {
		return canonical
	}
	return name
}
