// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/quill-tui/internal/registry"
)

// =============================================================================
// DOCUMENT SPLITTING
// =============================================================================

func TestSplitDocument(t *testing.T) {
	doc := SplitDocument("My Report Title\n\nIntro paragraph.\n\nConclusion.")

	if doc.Title != "My Report Title" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("Paragraphs = %d, want 2", len(doc.Paragraphs))
	}
	if doc.Paragraphs[0] != "Intro paragraph." || doc.Paragraphs[1] != "Conclusion." {
		t.Errorf("Paragraphs = %v", doc.Paragraphs)
	}
}

func TestSplitDocumentJoinsWrappedLines(t *testing.T) {
	doc := SplitDocument("Title\n\nline one\nline two\n\nnext")
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("Paragraphs = %v", doc.Paragraphs)
	}
	if doc.Paragraphs[0] != "line one line two" {
		t.Errorf("Paragraphs[0] = %q", doc.Paragraphs[0])
	}
}

func TestSplitDocumentEmpty(t *testing.T) {
	doc := SplitDocument("   \n\n  ")
	if doc.Title != "" || len(doc.Paragraphs) != 0 {
		t.Errorf("doc = %+v, want empty", doc)
	}
}

// =============================================================================
// DISPATCH TABLE
// =============================================================================

func TestNewTableRegistersAllFormats(t *testing.T) {
	table, err := NewTable(NewNamer(t.TempDir()))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	for _, tag := range registry.Formats() {
		r, err := table.Renderer(tag)
		if err != nil {
			t.Errorf("Renderer(%s): %v", tag, err)
			continue
		}
		if r.Format() != tag {
			t.Errorf("Renderer(%s).Format() = %s", tag, r.Format())
		}
	}
}

func TestTableUnknownFormatIsConfigurationError(t *testing.T) {
	table, err := NewTable(NewNamer(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = table.Renderer("excel")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

// Renderers never re-validate values, but a structurally missing
// attribute must fail loudly as a configuration error.
func TestRenderMissingAttributeFailsLoudly(t *testing.T) {
	r := NewWordRenderer()
	spec, err := registry.SpecFor(registry.FormatWord)
	if err != nil {
		t.Fatal(err)
	}

	attrs := spec.Defaults()
	delete(attrs, "line_spacing")

	_, err = r.Render(SplitDocument("T\n\nbody"), attrs)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestRenderToFileProducesArtifact(t *testing.T) {
	dir := t.TempDir()
	table, err := NewTable(NewNamer(dir))
	if err != nil {
		t.Fatal(err)
	}

	spec, _ := registry.SpecFor(registry.FormatWord)
	doc := SplitDocument("My Report Title\n\nIntro paragraph.\n\nConclusion.")

	artifact, err := table.RenderToFile(registry.FormatWord, doc, spec.Defaults(), "")
	if err != nil {
		t.Fatalf("RenderToFile: %v", err)
	}

	if artifact.Format != registry.FormatWord {
		t.Errorf("Format = %s", artifact.Format)
	}
	if artifact.Path == "" || !strings.HasSuffix(artifact.Path, ".docx") {
		t.Errorf("Path = %q", artifact.Path)
	}
	if artifact.Size <= 0 {
		t.Errorf("Size = %d", artifact.Size)
	}
	if artifact.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}
