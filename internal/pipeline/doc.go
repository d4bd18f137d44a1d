// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline orchestrates one export run: raw generated text plus a
// natural-language instruction in, a document artifact out.
//
// The coordinator sequences the stages strictly left to right:
//
//	normalize -> classify -> (early exit) -> extract -> route -> render -> notify
//
// Each stage runs exactly once per run and writes its own State fields;
// later stages read but never rewrite earlier ones. There is no internal
// concurrency, no retry loop, and no shared mutable state between runs:
// one State value is threaded through and returned to the caller.
//
// Unreliable upstream output is contained at two points. The classifier
// validates the NLU intent judgment against the closed format enumeration
// and degrades ambiguity to the documented default route. The extractor
// validates every judged attribute against the format's registry spec and
// returns a map that is total over it, so renderers downstream never
// null-check. An NLU transport failure, by contrast, fails the run:
// guessing intent from raw heuristics would violate the instruction-driven
// contract.
package pipeline
