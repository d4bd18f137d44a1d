// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/quill-tui/internal/registry"
	"github.com/jeranaias/quill-tui/internal/util"
)

// =============================================================================
// ARTIFACT DESCRIPTOR
// =============================================================================

// ArtifactDescriptor describes one produced document file. It is created
// once per successful run, never mutated afterwards, and owned by the
// caller for any further action (opening, moving, deleting).
type ArtifactDescriptor struct {
	Path      string
	Format    registry.FormatTag
	Size      int64
	CreatedAt time.Time
}

// =============================================================================
// DOCUMENT MODEL
// =============================================================================

// Document is the renderer-facing shape of normalized text: a title taken
// from the first non-empty line and body paragraphs split on blank lines.
type Document struct {
	Title      string
	Paragraphs []string
}

// SplitDocument derives a Document from normalized text. An empty input
// yields an empty document; renderers still produce a valid (blank) file.
func SplitDocument(text string) Document {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var doc Document
	rest := ""
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			doc.Title = strings.TrimSpace(line)
			rest = strings.Join(lines[i+1:], "\n")
			break
		}
	}

	for _, block := range strings.Split(rest, "\n\n") {
		para := strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		if para != "" {
			doc.Paragraphs = append(doc.Paragraphs, para)
		}
	}
	return doc
}

// =============================================================================
// RENDERER DISPATCH
// =============================================================================

// ErrConfiguration indicates a renderer/registry inconsistency, e.g. a
// renderer requiring an attribute its format's spec does not declare.
// This is fatal and surfaced to the caller: no retry can fix wiring.
var ErrConfiguration = errors.New("render: renderer/registry configuration mismatch")

// Renderer produces one format's file content from a document and its
// total attribute map.
type Renderer interface {
	// Format returns the tag this renderer serves.
	Format() registry.FormatTag

	// FileExtension returns the artifact extension including the dot.
	FileExtension() string

	// Render produces the file bytes. The attribute map is total over
	// the format's registry spec; Render reads it without re-validating
	// value domains.
	Render(doc Document, attrs registry.AttributeMap) ([]byte, error)

	// requires lists the attribute names the renderer reads. The
	// dispatch table checks them against the registry at construction.
	requires() []string
}

// Table is the renderer dispatch table, keyed by format tag. It is built
// once at startup and read-only afterwards, safe for concurrent runs.
type Table struct {
	renderers map[registry.FormatTag]Renderer
	namer     *Namer
}

// NewTable builds the dispatch table with all built-in renderers and
// cross-checks every renderer against the registry: each must serve a
// declared format, and every attribute it reads must exist in that
// format's spec. A mismatch is ErrConfiguration.
func NewTable(namer *Namer) (*Table, error) {
	t := &Table{
		renderers: make(map[registry.FormatTag]Renderer),
		namer:     namer,
	}

	for _, r := range []Renderer{NewWordRenderer(), NewPDFRenderer()} {
		spec, err := registry.SpecFor(r.Format())
		if err != nil {
			return nil, fmt.Errorf("%w: renderer for undeclared format %q", ErrConfiguration, r.Format())
		}
		for _, name := range r.requires() {
			if _, ok := spec.Attributes[name]; !ok {
				return nil, fmt.Errorf("%w: %s renderer reads %q, spec does not declare it",
					ErrConfiguration, r.Format(), name)
			}
		}
		t.renderers[r.Format()] = r
	}

	return t, nil
}

// Renderer returns the renderer registered for a format.
func (t *Table) Renderer(format registry.FormatTag) (Renderer, error) {
	r, ok := t.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no renderer for format %q", ErrConfiguration, format)
	}
	return r, nil
}

// RenderToFile renders the document and writes the artifact atomically to
// a path resolved by the naming collaborator.
func (t *Table) RenderToFile(format registry.FormatTag, doc Document, attrs registry.AttributeMap, customName string) (*ArtifactDescriptor, error) {
	r, err := t.Renderer(format)
	if err != nil {
		return nil, err
	}

	content, err := r.Render(doc, attrs)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	path, err := t.namer.Resolve(r.FileExtension(), customName)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact path: %w", err)
	}

	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	return &ArtifactDescriptor{
		Path:      path,
		Format:    format,
		Size:      int64(len(content)),
		CreatedAt: time.Now(),
	}, nil
}

// =============================================================================
// ATTRIBUTE ACCESS
// =============================================================================

// The helpers below fail with ErrConfiguration when an attribute is
// structurally absent or of the wrong shape. That can only happen when
// the registry and a renderer disagree, never from user input.

func stringAttr(attrs registry.AttributeMap, name string) (string, error) {
	v, ok := attrs[name]
	if !ok {
		return "", fmt.Errorf("%w: attribute %q missing", ErrConfiguration, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: attribute %q is %T, want string", ErrConfiguration, name, v)
	}
	return s, nil
}

func intAttr(attrs registry.AttributeMap, name string) (int, error) {
	v, ok := attrs[name]
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q missing", ErrConfiguration, name)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q is %T, want int", ErrConfiguration, name, v)
	}
	return n, nil
}

func boolAttr(attrs registry.AttributeMap, name string) (bool, error) {
	v, ok := attrs[name]
	if !ok {
		return false, fmt.Errorf("%w: attribute %q missing", ErrConfiguration, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: attribute %q is %T, want bool", ErrConfiguration, name, v)
	}
	return b, nil
}

func floatAttr(attrs registry.AttributeMap, name string) (float64, error) {
	v, ok := attrs[name]
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q missing", ErrConfiguration, name)
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	}
	return 0, fmt.Errorf("%w: attribute %q is %T, want number", ErrConfiguration, name, v)
}

// =============================================================================
// ARTIFACT OPENING
// =============================================================================

// OpenArtifact opens the artifact in the platform's default application.
// Failure to open is advisory: the file exists either way.
func OpenArtifact(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
