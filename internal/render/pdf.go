// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jeranaias/quill-tui/internal/registry"
)

// =============================================================================
// PDF RENDERER
// =============================================================================

// Letter page geometry in PostScript points.
const (
	pdfPageWidth  = 612.0
	pdfPageHeight = 792.0
)

// PDFRenderer produces PDF documents through pdfcpu's create API: it lays
// the document out into positioned text lines, describes them as pdfcpu
// page-description JSON, and lets pdfcpu emit the PDF.
//
// Line layout (wrapping, pagination) is computed here with core-font
// width estimates; pdfcpu only draws what it is told. The base-14 font
// constraint in the registry guarantees no font files are needed.
type PDFRenderer struct{}

// NewPDFRenderer creates the PDF renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (*PDFRenderer) Format() registry.FormatTag { return registry.FormatPDF }

func (*PDFRenderer) FileExtension() string { return ".pdf" }

func (*PDFRenderer) requires() []string {
	return []string{
		"font", "size", "alignment", "title_alignment", "title_size",
		"margin_left", "margin_right", "margin_top", "margin_bottom",
	}
}

// pdfStyle is the resolved layout input.
type pdfStyle struct {
	font       string
	sizePt     int
	alignment  string
	titleAlign string
	titleSize  int

	left, right, top, bottom float64
}

// Render implements Renderer.
func (r *PDFRenderer) Render(doc Document, attrs registry.AttributeMap) ([]byte, error) {
	style, err := r.style(attrs)
	if err != nil {
		return nil, err
	}

	desc := layoutPDF(doc, style)
	payload, err := json.Marshal(desc)
	if err != nil {
		return nil, fmt.Errorf("marshal page description: %w", err)
	}

	var buf bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.Create(nil, bytes.NewReader(payload), &buf, conf); err != nil {
		return nil, fmt.Errorf("pdfcpu create: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) style(attrs registry.AttributeMap) (pdfStyle, error) {
	var s pdfStyle
	var err error
	if s.font, err = stringAttr(attrs, "font"); err != nil {
		return s, err
	}
	if s.sizePt, err = intAttr(attrs, "size"); err != nil {
		return s, err
	}
	if s.alignment, err = stringAttr(attrs, "alignment"); err != nil {
		return s, err
	}
	if s.titleAlign, err = stringAttr(attrs, "title_alignment"); err != nil {
		return s, err
	}
	if s.titleSize, err = intAttr(attrs, "title_size"); err != nil {
		return s, err
	}

	for _, m := range []struct {
		name string
		dst  *float64
	}{
		{"margin_left", &s.left},
		{"margin_right", &s.right},
		{"margin_top", &s.top},
		{"margin_bottom", &s.bottom},
	} {
		n, err := intAttr(attrs, m.name)
		if err != nil {
			return s, err
		}
		*m.dst = float64(n)
	}
	return s, nil
}

// =============================================================================
// PAGE-DESCRIPTION JSON
// =============================================================================

// Wire shapes for pdfcpu's create API. Positions are absolute in points
// with the origin at the lower-left corner of the page.

type pdfFontDesc struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfTextDesc struct {
	Value    string      `json:"value"`
	Position [2]float64  `json:"position"`
	Font     pdfFontDesc `json:"font"`
}

type pdfContentDesc struct {
	Text []pdfTextDesc `json:"text"`
}

type pdfPageDesc struct {
	Content pdfContentDesc `json:"content"`
}

type pdfCreateDesc struct {
	Paper string                 `json:"paper"`
	Pages map[string]pdfPageDesc `json:"pages"`
}

// =============================================================================
// LAYOUT
// =============================================================================

// charWidthFactor approximates average glyph advance as a fraction of the
// font size for the base-14 text fonts. Courier is fixed-pitch at 0.6em;
// the proportional fonts average close to half an em in body text.
var charWidthFactor = map[string]float64{
	"Helvetica":   0.50,
	"Times-Roman": 0.48,
	"Courier":     0.60,
}

// layoutPDF wraps and paginates the document into positioned lines.
func layoutPDF(doc Document, s pdfStyle) pdfCreateDesc {
	usable := pdfPageWidth - s.left - s.right
	bodyLH := float64(s.sizePt) * 1.4
	titleLH := float64(s.titleSize) * 1.4

	desc := pdfCreateDesc{
		Paper: "Letter",
		Pages: map[string]pdfPageDesc{},
	}

	pageNr := 1
	cursor := pdfPageHeight - s.top
	page := &pdfPageDesc{}

	flush := func() {
		if len(page.Content.Text) > 0 {
			desc.Pages[strconv.Itoa(pageNr)] = *page
			pageNr++
		}
		page = &pdfPageDesc{}
		cursor = pdfPageHeight - s.top
	}

	emit := func(line, font string, size int, lh float64, align string) {
		if cursor-lh < s.bottom {
			flush()
		}
		cursor -= lh
		x := alignX(line, font, size, align, s.left, usable)
		page.Content.Text = append(page.Content.Text, pdfTextDesc{
			Value:    line,
			Position: [2]float64{x, cursor},
			Font:     pdfFontDesc{Name: font, Size: size},
		})
	}

	if doc.Title != "" {
		for _, line := range wrapLine(doc.Title, s.font, s.titleSize, usable) {
			emit(line, s.font, s.titleSize, titleLH, s.titleAlign)
		}
		cursor -= bodyLH // gap below the title
	}

	for _, para := range doc.Paragraphs {
		for _, line := range wrapLine(para, s.font, s.sizePt, usable) {
			emit(line, s.font, s.sizePt, bodyLH, s.alignment)
		}
		cursor -= bodyLH * 0.6 // paragraph gap
	}

	flush()

	// A blank document still yields one valid page.
	if len(desc.Pages) == 0 {
		desc.Pages["1"] = pdfPageDesc{}
	}
	return desc
}

// lineWidth estimates the rendered width of a line in points.
func lineWidth(line, font string, size int) float64 {
	factor, ok := charWidthFactor[font]
	if !ok {
		factor = 0.5
	}
	return float64(len([]rune(line))) * factor * float64(size)
}

// alignX computes the x position for a line. Justification is not
// simulated; justify falls back to left placement.
func alignX(line, font string, size int, align string, left, usable float64) float64 {
	w := lineWidth(line, font, size)
	switch align {
	case "center":
		if w < usable {
			return left + (usable-w)/2
		}
	case "right":
		if w < usable {
			return left + usable - w
		}
	}
	return left
}

// wrapLine greedily wraps text into lines that fit the usable width. A
// single word wider than the line is emitted on its own line rather than
// split.
func wrapLine(text, font string, size int, usable float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if lineWidth(candidate, font, size) > usable {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
