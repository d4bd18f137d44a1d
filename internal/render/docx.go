// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/jeranaias/quill-tui/internal/registry"
)

// =============================================================================
// WORD RENDERER
// =============================================================================

// WordRenderer writes WordprocessingML (.docx) documents. A .docx file is
// a ZIP archive whose word/document.xml carries the content; only the
// three mandatory parts are emitted, which every Word-compatible reader
// accepts.
type WordRenderer struct{}

// NewWordRenderer creates the .docx renderer.
func NewWordRenderer() *WordRenderer { return &WordRenderer{} }

func (*WordRenderer) Format() registry.FormatTag { return registry.FormatWord }

func (*WordRenderer) FileExtension() string { return ".docx" }

func (*WordRenderer) requires() []string {
	return []string{
		"font", "size", "bold", "italic", "underline",
		"alignment", "line_spacing", "title_alignment", "title_size",
	}
}

// wordRunStyle captures the run and paragraph properties one paragraph
// carries.
type wordRunStyle struct {
	font        string
	sizePt      int
	bold        bool
	italic      bool
	underline   bool
	alignment   string
	lineSpacing float64
}

// Render implements Renderer.
func (r *WordRenderer) Render(doc Document, attrs registry.AttributeMap) ([]byte, error) {
	body, err := r.bodyStyle(attrs)
	if err != nil {
		return nil, err
	}
	title, err := r.titleStyle(attrs, body)
	if err != nil {
		return nil, err
	}

	var xmlBody strings.Builder
	if doc.Title != "" {
		writeWordParagraph(&xmlBody, doc.Title, title)
	}
	for _, para := range doc.Paragraphs {
		writeWordParagraph(&xmlBody, para, body)
	}

	document := fmt.Sprintf(docxDocumentTmpl, xmlBody.String())

	return zipDocx(map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   document,
	})
}

func (r *WordRenderer) bodyStyle(attrs registry.AttributeMap) (wordRunStyle, error) {
	var s wordRunStyle
	var err error
	if s.font, err = stringAttr(attrs, "font"); err != nil {
		return s, err
	}
	if s.sizePt, err = intAttr(attrs, "size"); err != nil {
		return s, err
	}
	if s.bold, err = boolAttr(attrs, "bold"); err != nil {
		return s, err
	}
	if s.italic, err = boolAttr(attrs, "italic"); err != nil {
		return s, err
	}
	if s.underline, err = boolAttr(attrs, "underline"); err != nil {
		return s, err
	}
	if s.alignment, err = stringAttr(attrs, "alignment"); err != nil {
		return s, err
	}
	if s.lineSpacing, err = floatAttr(attrs, "line_spacing"); err != nil {
		return s, err
	}
	return s, nil
}

// titleStyle derives the title paragraph style: body font, title size,
// always bold, title alignment, single spacing.
func (r *WordRenderer) titleStyle(attrs registry.AttributeMap, body wordRunStyle) (wordRunStyle, error) {
	title := wordRunStyle{
		font:        body.font,
		bold:        true,
		lineSpacing: 1.0,
	}
	var err error
	if title.sizePt, err = intAttr(attrs, "title_size"); err != nil {
		return title, err
	}
	if title.alignment, err = stringAttr(attrs, "title_alignment"); err != nil {
		return title, err
	}
	return title, nil
}

// =============================================================================
// WORDPROCESSINGML EMISSION
// =============================================================================

// writeWordParagraph emits one <w:p> with explicit run properties. Font
// sizes are half-points in OOXML; line spacing is 240ths of a line with
// lineRule "auto".
func writeWordParagraph(b *strings.Builder, text string, s wordRunStyle) {
	b.WriteString("<w:p><w:pPr>")
	fmt.Fprintf(b, `<w:jc w:val=%q/>`, wordJc(s.alignment))
	if s.lineSpacing != 1.0 {
		fmt.Fprintf(b, `<w:spacing w:line="%d" w:lineRule="auto"/>`, int(s.lineSpacing*240))
	}
	b.WriteString("</w:pPr><w:r><w:rPr>")
	fmt.Fprintf(b, `<w:rFonts w:ascii=%q w:hAnsi=%q/>`, xmlEscape(s.font), xmlEscape(s.font))
	if s.bold {
		b.WriteString("<w:b/>")
	}
	if s.italic {
		b.WriteString("<w:i/>")
	}
	if s.underline {
		b.WriteString(`<w:u w:val="single"/>`)
	}
	fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, s.sizePt*2, s.sizePt*2)
	b.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	b.WriteString(xmlEscape(text))
	b.WriteString("</w:t></w:r></w:p>")
}

// wordJc maps registry alignment values onto w:jc values. OOXML spells
// full justification "both".
func wordJc(alignment string) string {
	if alignment == "justify" {
		return "both"
	}
	return alignment
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string { return xmlEscaper.Replace(s) }

// zipDocx packs the OOXML parts into the .docx ZIP container.
func zipDocx(parts map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// Deterministic part order keeps output byte-stable for tests.
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// STATIC OOXML PARTS
// =============================================================================

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// docxDocumentTmpl wraps the emitted paragraphs with the document body
// and a default Letter page geometry (twips).
const docxDocumentTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr></w:body>
</w:document>`
