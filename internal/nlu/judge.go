// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nlu

import (
	"context"
	"encoding/json"
	"strings"
)

// SchemaVersion identifies the judgment schema the adapters request and
// decode. Bump it when the JSON shapes below change so prompt text and
// decoders move together.
const SchemaVersion = 1

// =============================================================================
// JUDGE CAPABILITY
// =============================================================================

// IntentJudgment is a backend's structured answer to "does this
// instruction request an export, and into which format?". Format carries
// whatever string the backend produced; the classifier stage validates it
// against the closed format enumeration.
type IntentJudgment struct {
	ExportRequested bool
	Format          string
}

// AttributeHint names one attribute the extraction prompt may mention,
// with the domain description shown to the model.
type AttributeHint struct {
	Name        string
	Description string
}

// Judge is the NLU capability consumed by the pipeline. Implementations
// block until the backend answers or ctx is done.
type Judge interface {
	// ClassifyIntent judges whether the instruction asks for an export
	// and which format it names, if any.
	ClassifyIntent(ctx context.Context, instruction string) (IntentJudgment, error)

	// ExtractFormatting extracts the formatting attributes the
	// instruction explicitly mentions, restricted to the hinted names.
	// The returned map is raw model output: names and values are
	// validated downstream against the format's registry spec.
	ExtractFormatting(ctx context.Context, instruction, format string, hints []AttributeHint) (map[string]any, error)
}

// ChatMessage is one turn of a free-form conversation, used by backends
// that also serve plain generation for the chat view.
type ChatMessage struct {
	Role    string
	Content string
}

// Generator is the plain-generation capability the chat view consumes.
// Both judge backends implement it over the same transport.
type Generator interface {
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}

// =============================================================================
// JUDGMENT DECODING
// =============================================================================

// intentPayload is the wire shape of a classification judgment.
type intentPayload struct {
	ExportRequested bool   `json:"export_requested"`
	Format          string `json:"format"`
}

// decodeIntent parses a model's JSON classification answer.
func decodeIntent(raw string) (IntentJudgment, error) {
	var payload intentPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return IntentJudgment{}, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "malformed intent judgment",
			Cause:   err,
		}
	}
	return IntentJudgment{
		ExportRequested: payload.ExportRequested,
		Format:          strings.TrimSpace(payload.Format),
	}, nil
}

// decodeAttributes parses a model's JSON extraction answer into a raw
// attribute map. Numbers are kept as json.Number so the registry domains
// can canonicalize them without float drift.
func decodeAttributes(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	dec.UseNumber()

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "malformed formatting judgment",
			Cause:   err,
		}
	}
	return attrs, nil
}

// stripFences removes a Markdown code fence wrapper, which some models
// emit even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
