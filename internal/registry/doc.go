// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry declares the closed set of export formats and, for each
// format, the styling attributes a rendered document can carry.
//
// The registry is the single source of truth for attribute names, value
// domains, and defaults. The formatting extractor validates NLU output
// against it, and renderers read their settings from the total attribute
// maps it guarantees.
//
// # Key Types
//
//   - FormatTag: closed export format enumeration (word, pdf)
//   - AttributeSpec: one attribute's domain and default
//   - FormatSpec: the full attribute table for one format
//   - AttributeMap: validated attribute name -> value mapping
//
// # Extending
//
// Adding an attribute to a format is a declarative change to that format's
// spec table below. Adding a format means one new FormatTag, one new
// FormatSpec entry, and one renderer registration in the render package.
// No extractor or router code changes are required for either.
//
// The registry is built once at package init and never mutated afterwards,
// so it is safe to share across concurrent pipeline runs without locking.
package registry
