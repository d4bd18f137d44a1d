// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nlu adapts natural-language-understanding backends to the
// pipeline's Judge capability.
//
// The pipeline never talks to a model endpoint directly. It consumes the
// Judge interface, which returns structured judgments constrained to a
// declared schema: an intent judgment (export requested + format) for
// classification, and a raw attribute map for formatting extraction.
// Judgments are decoded defensively and returned unvalidated; semantic
// validation against the format registry belongs to the pipeline stages,
// which must never trust a judgment as pre-validated.
//
// # Backends
//
//   - OllamaJudge: local Ollama server, /api/chat with format "json"
//   - OpenRouterJudge: hosted OpenAI-compatible endpoint with
//     response_format json_object
//
// Both backends are retry-free: retrying a nondeterministic model call
// changes outcomes, so retry policy belongs to the caller.
package nlu
