// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"encoding/json"
	"errors"
	"testing"
)

// =============================================================================
// FORMAT TAG TESTS
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		want   FormatTag
		wantOK bool
	}{
		{"word", FormatWord, true},
		{"Word", FormatWord, true},
		{"  DOCX  ", FormatWord, true},
		{"doc", FormatWord, true},
		{"pdf", FormatPDF, true},
		{"PDF document", FormatPDF, true},
		{"excel", "", false},
		{"", "", false},
		{"none", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseFormat(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatsClosedSet(t *testing.T) {
	tags := Formats()
	if len(tags) != 2 {
		t.Fatalf("Formats() returned %d tags, want 2", len(tags))
	}
	// Sorted order: pdf before word.
	if tags[0] != FormatPDF || tags[1] != FormatWord {
		t.Errorf("Formats() = %v, want [pdf word]", tags)
	}
}

func TestSpecForUnknownFormat(t *testing.T) {
	_, err := SpecFor(FormatTag("excel"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("SpecFor(excel) error = %v, want ErrUnknownFormat", err)
	}
}

// =============================================================================
// DOMAIN TESTS
// =============================================================================

func TestBoolDomain(t *testing.T) {
	d := BoolDomain{}

	if v, ok := d.Validate(true); !ok || v != true {
		t.Errorf("Validate(true) = %v, %v", v, ok)
	}
	if v, ok := d.Validate("False"); !ok || v != false {
		t.Errorf("Validate(\"False\") = %v, %v", v, ok)
	}
	if _, ok := d.Validate("yes-ish"); ok {
		t.Error("Validate(\"yes-ish\") accepted, want rejected")
	}
	if _, ok := d.Validate(1); ok {
		t.Error("Validate(1) accepted, want rejected")
	}
}

func TestIntRange(t *testing.T) {
	d := IntRange{Min: 6, Max: 96}

	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{14, 14, true},
		{float64(14), 14, true},      // JSON number decode shape
		{json.Number("14"), 14, true},
		{"14", 14, true},
		{14.5, 0, false}, // not integral: rejected, never rounded
		{-5, 0, false},
		{97, 0, false},
		{"fourteen", 0, false},
	}

	for _, tt := range tests {
		got, ok := d.Validate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Validate(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got.(int) != tt.want {
			t.Errorf("Validate(%v) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFloatRange(t *testing.T) {
	d := FloatRange{Min: 0.5, Max: 3.0}

	if v, ok := d.Validate(1.5); !ok || v.(float64) != 1.5 {
		t.Errorf("Validate(1.5) = %v, %v", v, ok)
	}
	if v, ok := d.Validate(2); !ok || v.(float64) != 2.0 {
		t.Errorf("Validate(2) = %v, %v", v, ok)
	}
	if _, ok := d.Validate(0.4); ok {
		t.Error("Validate(0.4) accepted, want rejected")
	}
}

func TestEnumCanonicalizes(t *testing.T) {
	d := Enum{Values: []string{"left", "center", "right", "justify"}}

	if v, ok := d.Validate("CENTER"); !ok || v != "center" {
		t.Errorf("Validate(CENTER) = %v, %v", v, ok)
	}
	if _, ok := d.Validate("middle"); ok {
		t.Error("Validate(middle) accepted, want rejected")
	}
	if _, ok := d.Validate(3); ok {
		t.Error("Validate(3) accepted, want rejected")
	}
}

func TestFontNameAliases(t *testing.T) {
	d := FontName{}

	if v, _ := d.Validate("times new roman"); v != "Times New Roman" {
		t.Errorf("alias not canonicalized: %v", v)
	}
	// Unknown fonts pass through: Word's font set is open.
	if v, ok := d.Validate("Futura"); !ok || v != "Futura" {
		t.Errorf("Validate(Futura) = %v, %v", v, ok)
	}
	if _, ok := d.Validate("   "); ok {
		t.Error("blank font accepted, want rejected")
	}
}

// =============================================================================
// SPEC TESTS
// =============================================================================

func TestDefaultsTotal(t *testing.T) {
	for _, tag := range Formats() {
		spec, err := SpecFor(tag)
		if err != nil {
			t.Fatalf("SpecFor(%s): %v", tag, err)
		}

		defaults := spec.Defaults()
		if len(defaults) != len(spec.Attributes) {
			t.Errorf("%s: Defaults() has %d entries, spec has %d",
				tag, len(defaults), len(spec.Attributes))
		}

		// Every default must live inside its own domain, otherwise the
		// extractor's total-map guarantee is unsound from the start.
		for name, attr := range spec.Attributes {
			if _, ok := attr.Domain.Validate(defaults[name]); !ok {
				t.Errorf("%s.%s: default %v outside its own domain",
					tag, name, defaults[name])
			}
		}
	}
}

func TestWordDefaults(t *testing.T) {
	spec, err := SpecFor(FormatWord)
	if err != nil {
		t.Fatal(err)
	}
	defaults := spec.Defaults()

	if defaults["font"] != "Calibri" {
		t.Errorf("font default = %v, want Calibri", defaults["font"])
	}
	if defaults["size"] != 11 {
		t.Errorf("size default = %v, want 11", defaults["size"])
	}
	if defaults["bold"] != false {
		t.Errorf("bold default = %v, want false", defaults["bold"])
	}
}

func TestPDFFontDomainClosed(t *testing.T) {
	spec, err := SpecFor(FormatPDF)
	if err != nil {
		t.Fatal(err)
	}

	font := spec.Attributes["font"]
	if _, ok := font.Domain.Validate("Comic Sans"); ok {
		t.Error("PDF font domain accepted a non-base-14 font")
	}
	if v, ok := font.Domain.Validate("helvetica"); !ok || v != "Helvetica" {
		t.Errorf("Validate(helvetica) = %v, %v", v, ok)
	}
}
