// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/quill-tui/internal/registry"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete quill configuration.
type Config struct {
	// General settings
	General GeneralConfig `toml:"general"`

	// NLU backend selection and per-backend settings
	NLU        NLUConfig        `toml:"nlu"`
	Ollama     OllamaConfig     `toml:"ollama"`
	OpenRouter OpenRouterConfig `toml:"openrouter"`

	// Export history
	History HistoryConfig `toml:"history"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// GeneralConfig contains top-level export behavior.
type GeneralConfig struct {
	// DefaultFormat is used when an instruction names no format.
	// One of the registered format tags ("word", "pdf").
	DefaultFormat string `toml:"default_format"`
	// ExportDir is where artifacts are written. Empty = ~/.quill/exports
	ExportDir string `toml:"export_dir"`
	// OpenAfterExport hands finished artifacts to the OS default app.
	OpenAfterExport bool `toml:"open_after_export"`
}

// NLUConfig selects which judge backend interprets instructions.
type NLUConfig struct {
	// Backend is "ollama" (default, local) or "openrouter" (cloud).
	Backend string `toml:"backend"`
}

// OllamaConfig contains local Ollama judge configuration.
type OllamaConfig struct {
	// URL is the Ollama server base URL
	URL string `toml:"url"`
	// Model is the judge model
	Model string `toml:"model"`
	// TimeoutSecs bounds each judge call
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSecond throttles judge calls
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// OpenRouterConfig contains cloud judge configuration.
type OpenRouterConfig struct {
	// APIKey is the OpenRouter API key
	APIKey string `toml:"api_key"`
	// Model is the judge model
	Model string `toml:"model"`
}

// HistoryConfig controls the export history database.
type HistoryConfig struct {
	// Enabled records every export when true
	Enabled bool `toml:"enabled"`
	// DBPath overrides the database location. Empty = ~/.quill/history.db
	DBPath string `toml:"db_path"`
	// KeepDays prunes entries older than this on startup. 0 = keep forever
	KeepDays int `toml:"keep_days"`
}

// UIConfig contains TUI appearance configuration.
type UIConfig struct {
	// Theme is "dark" or "light"
	Theme string `toml:"theme"`
	// ShowPreview renders assistant markdown in the chat view
	ShowPreview bool `toml:"show_preview"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultFormat:   string(registry.DefaultFormat),
			OpenAfterExport: true,
		},
		NLU: NLUConfig{Backend: "ollama"},
		Ollama: OllamaConfig{
			URL:               "http://127.0.0.1:11434",
			Model:             "llama3.1:8b",
			TimeoutSecs:       30,
			RequestsPerSecond: 2,
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
		History: HistoryConfig{
			Enabled:  true,
			KeepDays: 0,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowPreview: true,
		},
	}
}

// ConfigDir returns the quill configuration directory (~/.quill).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".quill"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExportDir resolves the artifact output directory.
func (c *Config) ExportDir() (string, error) {
	if c.General.ExportDir != "" {
		return c.General.ExportDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// HistoryPath resolves the history database location.
func (c *Config) HistoryPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads configuration from ~/.quill/config.toml, falling back to
// defaults when the file does not exist. Environment overrides are
// applied last, then the result is validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. A missing
// file is not an error; defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies QUILL_* environment variables on top of
// whatever the file provided. Env wins.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("QUILL_FORMAT"); v != "" {
		c.General.DefaultFormat = v
	}
	if v := os.Getenv("QUILL_EXPORT_DIR"); v != "" {
		c.General.ExportDir = v
	}
	if v := os.Getenv("QUILL_OPEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.General.OpenAfterExport = b
		}
	}
	if v := os.Getenv("QUILL_BACKEND"); v != "" {
		c.NLU.Backend = v
	}
	if v := os.Getenv("QUILL_OLLAMA_URL"); v != "" {
		c.Ollama.URL = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("QUILL_OPENROUTER_KEY"); v != "" {
		c.OpenRouter.APIKey = v
	}
	if v := os.Getenv("QUILL_OPENROUTER_MODEL"); v != "" {
		c.OpenRouter.Model = v
	}
}

// SetDefaults fills zero values left by a sparse config file.
func (c *Config) SetDefaults() {
	def := Default()
	if c.General.DefaultFormat == "" {
		c.General.DefaultFormat = def.General.DefaultFormat
	}
	if c.NLU.Backend == "" {
		c.NLU.Backend = def.NLU.Backend
	}
	if c.Ollama.URL == "" {
		c.Ollama.URL = def.Ollama.URL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = def.Ollama.Model
	}
	if c.Ollama.TimeoutSecs <= 0 {
		c.Ollama.TimeoutSecs = def.Ollama.TimeoutSecs
	}
	if c.Ollama.RequestsPerSecond <= 0 {
		c.Ollama.RequestsPerSecond = def.Ollama.RequestsPerSecond
	}
	if c.OpenRouter.Model == "" {
		c.OpenRouter.Model = def.OpenRouter.Model
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that would fail at first
// use: unknown formats or backends, unparseable URLs, negative retention.
func (c *Config) Validate() error {
	if _, ok := registry.ParseFormat(c.General.DefaultFormat); !ok {
		return fmt.Errorf("general.default_format: unknown format %q (known: %s)",
			c.General.DefaultFormat, knownFormats())
	}
	switch strings.ToLower(c.NLU.Backend) {
	case "ollama", "openrouter":
	default:
		return fmt.Errorf("nlu.backend: %q is not one of ollama, openrouter", c.NLU.Backend)
	}
	if u, err := url.Parse(c.Ollama.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ollama.url: %q is not a valid URL", c.Ollama.URL)
	}
	if strings.EqualFold(c.NLU.Backend, "openrouter") && c.OpenRouter.APIKey == "" {
		return fmt.Errorf("openrouter.api_key: required when nlu.backend is openrouter")
	}
	if c.History.KeepDays < 0 {
		return fmt.Errorf("history.keep_days: must not be negative")
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme: %q is not one of dark, light", c.UI.Theme)
	}
	return nil
}

// DefaultFormatTag returns the configured default as a registry tag.
// Valid after Validate.
func (c *Config) DefaultFormatTag() registry.FormatTag {
	tag, _ := registry.ParseFormat(c.General.DefaultFormat)
	return tag
}

func knownFormats() string {
	tags := registry.Formats()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
// SECURITY: Config may hold an API key, so files are created 0600.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# quill configuration file")
	fmt.Fprintln(file, "# Generated by quill - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
