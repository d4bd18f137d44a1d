// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE NAMING
// =============================================================================

// Namer resolves artifact write paths. Path policy (exports directory,
// timestamping, collision safety) lives here, not in renderers.
type Namer struct {
	// Dir is the exports directory. Created on first resolve.
	Dir string

	// now is swappable for tests.
	now func() time.Time
}

// NewNamer creates a namer writing into dir.
func NewNamer(dir string) *Namer {
	return &Namer{Dir: dir, now: time.Now}
}

// Resolve returns an absolute path for a new artifact:
//
//	<dir>/<base>_<timestamp>_<short-id><ext>
//
// base is "export" or the sanitized custom name. The short random id
// keeps two exports within the same second from colliding.
func (n *Namer) Resolve(ext, customName string) (string, error) {
	if err := os.MkdirAll(n.Dir, 0755); err != nil {
		return "", fmt.Errorf("create exports directory: %w", err)
	}

	base := "export"
	if s := sanitizeFilename(customName); s != "" {
		base = s
	}

	stamp := n.now().Format("20060102_150405")
	short := uuid.NewString()[:8]
	filename := fmt.Sprintf("%s_%s_%s%s", base, stamp, short, ext)

	abs, err := filepath.Abs(filepath.Join(n.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("resolve exports path: %w", err)
	}
	return abs, nil
}

// sanitizeFilename strips characters that are invalid in filenames on
// Windows or Unix and caps the length. Returns "" when nothing usable
// remains.
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	// Drop a caller-provided extension; the renderer's extension wins.
	if ext := filepath.Ext(s); ext != "" && len(ext) <= 5 {
		s = strings.TrimSuffix(s, ext)
	}

	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "-_")
}
