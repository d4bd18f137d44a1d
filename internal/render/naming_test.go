// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveDefaultName(t *testing.T) {
	n := NewNamer(t.TempDir())
	n.now = func() time.Time { return time.Date(2025, 10, 23, 14, 30, 22, 0, time.UTC) }

	path, err := n.Resolve(".docx", "")
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "export_20251023_143022_") {
		t.Errorf("filename = %q", base)
	}
	if !strings.HasSuffix(base, ".docx") {
		t.Errorf("extension missing: %q", base)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("path not absolute: %q", path)
	}
}

func TestResolveCustomName(t *testing.T) {
	n := NewNamer(t.TempDir())

	path, err := n.Resolve(".pdf", "Q3 Report: final?")
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "Q3_Report-_final") {
		t.Errorf("sanitized name = %q", base)
	}
}

func TestResolveUniquePaths(t *testing.T) {
	n := NewNamer(t.TempDir())
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	a, err := n.Resolve(".pdf", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := n.Resolve(".pdf", "")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("same-second resolves collided")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report", "report"},
		{"my report.docx", "my_report"},
		{"a/b\\c:d", "a-b-c-d"},
		{"   ", ""},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
