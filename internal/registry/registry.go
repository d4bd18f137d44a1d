// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// FORMAT TAGS
// =============================================================================

// FormatTag identifies one supported export format.
type FormatTag string

const (
	// FormatWord is a Microsoft Word (.docx) document.
	FormatWord FormatTag = "word"

	// FormatPDF is a PDF document.
	FormatPDF FormatTag = "pdf"
)

// DefaultFormat is the renderer used when classification cannot determine
// an explicit target format. This default is deliberately stable: changing
// it silently would change the meaning of every ambiguous instruction.
const DefaultFormat = FormatWord

// Sentinel errors.
var (
	// ErrUnknownFormat indicates a format outside the closed enumeration
	// reached a registry lookup. This is a programming error, not a
	// runtime condition: callers are expected to route through
	// ParseFormat first.
	ErrUnknownFormat = errors.New("registry: unknown format")
)

// formatAliases maps the spellings an instruction (or an NLU judgment)
// may use onto canonical tags.
var formatAliases = map[string]FormatTag{
	"word":          FormatWord,
	"docx":          FormatWord,
	"doc":           FormatWord,
	"word document": FormatWord,
	"msword":        FormatWord,
	"pdf":           FormatPDF,
	"pdf document":  FormatPDF,
}

// ParseFormat maps a free-form format string onto the closed enumeration.
// Returns ok=false for anything outside it; callers treat that as "no
// format detected", never as an error.
func ParseFormat(s string) (FormatTag, bool) {
	tag, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	return tag, ok
}

// Formats returns the closed set of supported format tags, sorted.
func Formats() []FormatTag {
	tags := make([]FormatTag, 0, len(specs))
	for tag := range specs {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// =============================================================================
// VALUE DOMAINS
// =============================================================================

// Domain restricts the values an attribute may take. Validate returns the
// canonical form of v and true when v lies inside the domain, or false
// when the value must be replaced by the attribute's default.
//
// Validate must accept the loose types a JSON judgment decodes to
// (string, bool, float64, json.Number) and never guess: a value that
// cannot be canonicalized is rejected, not coerced.
type Domain interface {
	Validate(v any) (any, bool)

	// Describe returns a short human-readable description of the domain,
	// used in NLU prompt construction and the /formats listing.
	Describe() string
}

// BoolDomain accepts booleans and the literal strings "true"/"false".
type BoolDomain struct{}

func (BoolDomain) Validate(v any) (any, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return nil, false
}

func (BoolDomain) Describe() string { return "true or false" }

// IntRange accepts integral numbers in [Min, Max].
type IntRange struct {
	Min, Max int
}

func (d IntRange) Validate(v any) (any, bool) {
	n, ok := toInt(v)
	if !ok || n < d.Min || n > d.Max {
		return nil, false
	}
	return n, true
}

func (d IntRange) Describe() string {
	return fmt.Sprintf("integer %d..%d", d.Min, d.Max)
}

// FloatRange accepts numbers in [Min, Max].
type FloatRange struct {
	Min, Max float64
}

func (d FloatRange) Validate(v any) (any, bool) {
	f, ok := toFloat(v)
	if !ok || f < d.Min || f > d.Max {
		return nil, false
	}
	return f, true
}

func (d FloatRange) Describe() string {
	return fmt.Sprintf("number %g..%g", d.Min, d.Max)
}

// Enum accepts one of a fixed set of strings, case-insensitively, and
// canonicalizes to the declared spelling.
type Enum struct {
	Values []string
}

func (d Enum) Validate(v any) (any, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, val := range d.Values {
		if strings.ToLower(val) == s {
			return val, true
		}
	}
	return nil, false
}

func (d Enum) Describe() string {
	return "one of " + strings.Join(d.Values, ", ")
}

// FontName accepts any non-empty font name, canonicalizing well-known
// spellings. Word accepts arbitrary installed fonts, so the domain is
// open; unknown names pass through title-cased as given.
type FontName struct{}

// fontAliases canonicalizes the spellings NLU judgments commonly produce.
var fontAliases = map[string]string{
	"arial":           "Arial",
	"calibri":         "Calibri",
	"cambria":         "Cambria",
	"courier":         "Courier New",
	"courier new":     "Courier New",
	"georgia":         "Georgia",
	"helvetica":       "Helvetica",
	"times":           "Times New Roman",
	"times new roman": "Times New Roman",
	"verdana":         "Verdana",
}

func (FontName) Validate(v any) (any, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if canonical, ok := fontAliases[strings.ToLower(s)]; ok {
		return canonical, true
	}
	return s, true
}

func (FontName) Describe() string { return "font name, e.g. Arial, Calibri, Times New Roman" }

// toInt canonicalizes the numeric shapes a decoded JSON value may take.
// Floats are accepted only when integral; -5 stays -5 and 14.0 becomes 14,
// but 14.5 is rejected rather than rounded.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// =============================================================================
// ATTRIBUTE SPECS
// =============================================================================

// AttributeSpec declares one formatting attribute: its value domain and
// the default applied when an instruction leaves it unset.
type AttributeSpec struct {
	Name        string
	Description string
	Domain      Domain
	Default     any
}

// FormatSpec is the full attribute table for one format.
type FormatSpec struct {
	Format     FormatTag
	Attributes map[string]AttributeSpec
}

// AttributeMap is a validated attribute name -> value mapping. Maps
// returned by the formatting extractor are total over their FormatSpec:
// every declared attribute is present with an in-domain value.
type AttributeMap map[string]any

// Names returns the attribute names declared for the format, sorted.
func (fs *FormatSpec) Names() []string {
	names := make([]string, 0, len(fs.Attributes))
	for name := range fs.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a fresh attribute map with every attribute set to its
// declared default.
func (fs *FormatSpec) Defaults() AttributeMap {
	m := make(AttributeMap, len(fs.Attributes))
	for name, spec := range fs.Attributes {
		m[name] = spec.Default
	}
	return m
}

// =============================================================================
// THE REGISTRY
// =============================================================================

// Shared alignment domain. "justify" maps to full justification in both
// engines (w:jc val="both" in OOXML).
var alignments = Enum{Values: []string{"left", "center", "right", "justify"}}

// pdfFonts is the PDF base-14 subset the renderer can embed without font
// files. This is an engine constraint, not a style preference.
var pdfFonts = Enum{Values: []string{"Helvetica", "Times-Roman", "Courier"}}

// specs is built once here and treated as immutable afterwards.
var specs = map[FormatTag]*FormatSpec{
	FormatWord: {
		Format: FormatWord,
		Attributes: map[string]AttributeSpec{
			"font": {
				Name:        "font",
				Description: "body font family",
				Domain:      FontName{},
				Default:     "Calibri",
			},
			"size": {
				Name:        "size",
				Description: "body font size in points",
				Domain:      IntRange{Min: 6, Max: 96},
				Default:     11,
			},
			"bold": {
				Name:        "bold",
				Description: "bold body text",
				Domain:      BoolDomain{},
				Default:     false,
			},
			"italic": {
				Name:        "italic",
				Description: "italic body text",
				Domain:      BoolDomain{},
				Default:     false,
			},
			"underline": {
				Name:        "underline",
				Description: "underlined body text",
				Domain:      BoolDomain{},
				Default:     false,
			},
			"alignment": {
				Name:        "alignment",
				Description: "body paragraph alignment",
				Domain:      alignments,
				Default:     "left",
			},
			"line_spacing": {
				Name:        "line_spacing",
				Description: "line spacing multiplier",
				Domain:      FloatRange{Min: 0.5, Max: 3.0},
				Default:     1.0,
			},
			"title_alignment": {
				Name:        "title_alignment",
				Description: "title alignment",
				Domain:      alignments,
				Default:     "left",
			},
			"title_size": {
				Name:        "title_size",
				Description: "title font size in points",
				Domain:      IntRange{Min: 6, Max: 96},
				Default:     16,
			},
		},
	},
	FormatPDF: {
		Format: FormatPDF,
		Attributes: map[string]AttributeSpec{
			"font": {
				Name:        "font",
				Description: "body font (base-14)",
				Domain:      pdfFonts,
				Default:     "Helvetica",
			},
			"size": {
				Name:        "size",
				Description: "body font size in points",
				Domain:      IntRange{Min: 6, Max: 96},
				Default:     12,
			},
			"alignment": {
				Name:        "alignment",
				Description: "body paragraph alignment",
				Domain:      alignments,
				Default:     "left",
			},
			"title_alignment": {
				Name:        "title_alignment",
				Description: "title alignment",
				Domain:      alignments,
				Default:     "left",
			},
			"title_size": {
				Name:        "title_size",
				Description: "title font size in points",
				Domain:      IntRange{Min: 6, Max: 96},
				Default:     18,
			},
			"margin_left": {
				Name:        "margin_left",
				Description: "left margin in points (72 = 1 inch)",
				Domain:      IntRange{Min: 18, Max: 288},
				Default:     72,
			},
			"margin_right": {
				Name:        "margin_right",
				Description: "right margin in points",
				Domain:      IntRange{Min: 18, Max: 288},
				Default:     72,
			},
			"margin_top": {
				Name:        "margin_top",
				Description: "top margin in points",
				Domain:      IntRange{Min: 18, Max: 288},
				Default:     72,
			},
			"margin_bottom": {
				Name:        "margin_bottom",
				Description: "bottom margin in points",
				Domain:      IntRange{Min: 18, Max: 288},
				Default:     36,
			},
		},
	},
}

// SpecFor returns the attribute table for a format. An unknown format is a
// configuration error: the closed enumeration is validated long before a
// lookup happens, so hitting this path means a renderer or a caller was
// wired with a tag the registry does not declare.
func SpecFor(format FormatTag) (*FormatSpec, error) {
	spec, ok := specs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return spec, nil
}
