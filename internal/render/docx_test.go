// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jeranaias/quill-tui/internal/registry"
)

// renderDocx renders with defaults overridden by overrides and returns
// the word/document.xml payload.
func renderDocx(t *testing.T, text string, overrides registry.AttributeMap) string {
	t.Helper()

	spec, err := registry.SpecFor(registry.FormatWord)
	if err != nil {
		t.Fatal(err)
	}
	attrs := spec.Defaults()
	for k, v := range overrides {
		attrs[k] = v
	}

	content, err := NewWordRenderer().Render(SplitDocument(text), attrs)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("output is not a ZIP archive: %v", err)
	}

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatal(err)
			}
			return string(data)
		}
	}
	t.Fatal("word/document.xml missing from archive")
	return ""
}

func TestWordRendererAppliesStyling(t *testing.T) {
	xml := renderDocx(t, "My Report Title\n\nBody text.", registry.AttributeMap{
		"font":            "Arial",
		"size":            14,
		"bold":            true,
		"title_alignment": "center",
	})

	for _, want := range []string{
		`w:ascii="Arial"`,
		`<w:sz w:val="28"/>`, // 14pt = 28 half-points
		"<w:b/>",
		`<w:jc w:val="center"/>`,
		"My Report Title",
		"Body text.",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestWordRendererJustifyMapsToBoth(t *testing.T) {
	xml := renderDocx(t, "T\n\nbody", registry.AttributeMap{"alignment": "justify"})
	if !strings.Contains(xml, `<w:jc w:val="both"/>`) {
		t.Error("justify not mapped to w:jc both")
	}
}

func TestWordRendererLineSpacing(t *testing.T) {
	xml := renderDocx(t, "T\n\nbody", registry.AttributeMap{"line_spacing": 1.5})
	if !strings.Contains(xml, `<w:spacing w:line="360" w:lineRule="auto"/>`) {
		t.Error("1.5 line spacing not emitted as 360/240ths")
	}
}

func TestWordRendererEscapesContent(t *testing.T) {
	xml := renderDocx(t, "A & B <Report>\n\nx < y", nil)
	if strings.Contains(xml, "A & B <Report>") {
		t.Error("title not XML-escaped")
	}
	if !strings.Contains(xml, "A &amp; B &lt;Report&gt;") {
		t.Error("escaped title missing")
	}
}

func TestWordRendererArchiveParts(t *testing.T) {
	spec, _ := registry.SpecFor(registry.FormatWord)
	content, err := NewWordRenderer().Render(SplitDocument("T\n\nb"), spec.Defaults())
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		"[Content_Types].xml": false,
		"_rels/.rels":         false,
		"word/document.xml":   false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("archive missing %s", name)
		}
	}
}
