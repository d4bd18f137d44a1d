// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"regexp"
	"strings"
)

// ===== CONTENT NORMALIZER =====

// maxFillerLen bounds how long a paragraph may be and still count as
// filler. Substantive paragraphs that happen to open with a greeting or a
// "Note:" survive on length alone.
const maxFillerLen = 220

// Leading filler: assistant preambles that introduce the content without
// being part of it. Matched against a whole trimmed paragraph,
// case-insensitively.
var leadingFillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(sure|certainly|of course|absolutely|okay|alright|no problem|great question)[,.!]?\s`),
	regexp.MustCompile(`(?i)^(sure|certainly|of course|absolutely|okay|alright|no problem)[,.!]?$`),
	regexp.MustCompile(`(?i)^here('s| is| are) (the|your|a|an|what)\b.{0,160}[:.!]?$`),
	regexp.MustCompile(`(?i)^(i('ve| have)?|we('ve| have)?) (prepared|drafted|written|created|put together|generated)\b.{0,160}[:.!]?$`),
	regexp.MustCompile(`(?i)^below (is|you('ll| will) find)\b.{0,160}[:.!]?$`),
	regexp.MustCompile(`(?i)^as (requested|you asked)\b.{0,160}[:.!]?$`),
}

// Trailing filler: offers to continue, sign-offs, and hedging disclaimers
// that would read as garbage in an exported document.
var trailingFillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(please )?let me know\b`),
	regexp.MustCompile(`(?i)^feel free to\b`),
	regexp.MustCompile(`(?i)^(i )?hope (this|that) helps\b`),
	regexp.MustCompile(`(?i)^(would you like|do you want|should i|shall i|want me to)\b.{0,160}\?$`),
	regexp.MustCompile(`(?i)^if you (need|want|have any)\b.{0,160}[.!]?$`),
	regexp.MustCompile(`(?i)^(i('m| am) )?happy to (help|expand|revise|adjust)\b`),
	regexp.MustCompile(`(?i)^is there anything else\b`),
	regexp.MustCompile(`(?i)^as an ai\b`),
	regexp.MustCompile(`(?i)^(please note|note) that (this|these|i)\b.{0,160}[.!]?$`),
	regexp.MustCompile(`(?i)^this is (just )?a (draft|starting point|rough)\b`),
}

// Normalize strips conversational filler from the head and tail of
// assistant-generated text so only document content reaches the renderer.
// Interior paragraphs are never touched, and the operation is a fixpoint:
// running it on its own output changes nothing.
//
// Whitespace is canonicalized even when no filler is present: CRLF
// becomes LF and paragraphs are rejoined with exactly one blank line.
// SplitDocument relies on that shape, so content is preserved but byte
// equality with the input is not guaranteed.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	paras := splitParagraphs(raw)

	// Trim until stable so a pass over the output is a no-op even when
	// removing one filler paragraph exposes another.
	for {
		before := len(paras)

		for len(paras) > 0 && matchesAny(paras[0], leadingFillerPatterns) {
			paras = paras[1:]
		}
		for len(paras) > 0 && matchesAny(paras[len(paras)-1], trailingFillerPatterns) {
			paras = paras[:len(paras)-1]
		}

		// A trailing sign-off is often glued to the last content paragraph
		// as its final line rather than separated by a blank line.
		if len(paras) > 0 {
			paras[len(paras)-1] = trimTrailingFillerLines(paras[len(paras)-1])
			if strings.TrimSpace(paras[len(paras)-1]) == "" {
				paras = paras[:len(paras)-1]
			}
		}

		if len(paras) == before {
			break
		}
	}

	return strings.Join(paras, "\n\n")
}

func splitParagraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, p := range regexp.MustCompile(`\n{2,}`).Split(s, -1) {
		p = strings.TrimRight(strings.TrimLeft(p, "\n"), " \t\n")
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(para string, patterns []*regexp.Regexp) bool {
	para = strings.TrimSpace(para)
	if para == "" || len(para) > maxFillerLen {
		return false
	}
	for _, re := range patterns {
		if re.MatchString(para) {
			return true
		}
	}
	return false
}

func trimTrailingFillerLines(para string) string {
	lines := strings.Split(para, "\n")
	for len(lines) > 1 && matchesAny(lines[len(lines)-1], trailingFillerPatterns) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
