// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns normalized text plus a validated attribute map into
// a document artifact on disk.
//
// Each supported format has one Renderer. Renderers are registered in a
// dispatch Table keyed by format tag, so adding a format is a new
// Renderer plus one table entry; nothing routes by switch statements.
//
// Renderers trust their input: the formatting extractor guarantees the
// attribute map is total over the format's registry spec with in-domain
// values, so renderers read attributes without defensive re-validation. A
// structurally missing attribute is a configuration error
// (ErrConfiguration), surfaced loudly, never papered over.
//
// # Renderers
//
//   - WordRenderer: writes WordprocessingML (.docx) via archive/zip
//   - PDFRenderer: drives pdfcpu's page-description create API
//
// Artifacts are written atomically and described by ArtifactDescriptor,
// which the caller owns after the run completes.
package render
