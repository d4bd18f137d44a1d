// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nlu

import (
	"fmt"
	"strings"
)

// =============================================================================
// PROMPT CONSTRUCTION
// =============================================================================

// classifySystem pins the classification judgment to the schema the
// decoders expect. The format list is closed on purpose: anything outside
// it is mapped to "none" by the model, and re-validated downstream anyway.
const classifySystem = `You classify document export requests.
Respond with ONLY a JSON object, no prose, matching exactly:
{"export_requested": true|false, "format": "word"|"pdf"|"none"}

Rules:
- export_requested is true only when the instruction explicitly asks to
  export, save, download, or produce a document file. Never infer it from
  the topic or length of the content.
- format is the format the instruction names. Use "none" when no format
  is named or you are unsure.`

func classifyUser(instruction string) string {
	return fmt.Sprintf("Instruction: %q", instruction)
}

// extractSystem builds the extraction prompt for one format. Only the
// hinted attribute names may appear in the answer; the extractor stage
// drops anything else.
func extractSystem(format string, hints []AttributeHint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You extract formatting preferences for a %s export.\n", strings.ToUpper(format))
	b.WriteString("Respond with ONLY a JSON object, no prose.\n")
	b.WriteString("Allowed keys (include a key only when the instruction explicitly mentions it):\n")
	for _, h := range hints {
		fmt.Fprintf(&b, "- %s: %s\n", h.Name, h.Description)
	}
	b.WriteString("Return {} when the instruction mentions no formatting at all.\n")
	return b.String()
}

func extractUser(instruction string) string {
	return fmt.Sprintf("Instruction: %q", instruction)
}
