// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/quill-tui/internal/registry"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DefaultFormatTag() != registry.DefaultFormat {
		t.Errorf("default format tag = %q", cfg.DefaultFormatTag())
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Ollama.URL != "http://127.0.0.1:11434" {
		t.Errorf("ollama url = %q", cfg.Ollama.URL)
	}
	if cfg.NLU.Backend != "ollama" {
		t.Errorf("backend = %q", cfg.NLU.Backend)
	}
}

func TestLoadFromPathSparseFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[general]
default_format = "pdf"

[ollama]
model = "qwen2.5:7b"
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.DefaultFormatTag() != registry.FormatPDF {
		t.Errorf("default format = %q", cfg.General.DefaultFormat)
	}
	if cfg.Ollama.Model != "qwen2.5:7b" {
		t.Errorf("model = %q", cfg.Ollama.Model)
	}
	// Unspecified fields fall back to defaults.
	if cfg.Ollama.TimeoutSecs != 30 || cfg.Ollama.RequestsPerSecond != 2 {
		t.Errorf("ollama defaults not filled: %+v", cfg.Ollama)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ollama]\nmodel = \"from-file\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUILL_MODEL", "from-env")
	t.Setenv("QUILL_FORMAT", "pdf")
	t.Setenv("QUILL_OPEN", "false")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Ollama.Model != "from-env" {
		t.Errorf("model = %q, env should win", cfg.Ollama.Model)
	}
	if cfg.General.DefaultFormat != "pdf" {
		t.Errorf("format = %q", cfg.General.DefaultFormat)
	}
	if cfg.General.OpenAfterExport {
		t.Error("QUILL_OPEN=false ignored")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown format", func(c *Config) { c.General.DefaultFormat = "excel" }, "default_format"},
		{"unknown backend", func(c *Config) { c.NLU.Backend = "bard" }, "nlu.backend"},
		{"bad url", func(c *Config) { c.Ollama.URL = "not a url" }, "ollama.url"},
		{"negative retention", func(c *Config) { c.History.KeepDays = -1 }, "keep_days"},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
		{"openrouter without key", func(c *Config) { c.NLU.Backend = "openrouter" }, "api_key"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: no error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.General.DefaultFormat = "pdf"
	cfg.Ollama.Model = "mistral:7b"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.General.DefaultFormat != "pdf" || loaded.Ollama.Model != "mistral:7b" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
