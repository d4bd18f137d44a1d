// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// OLLAMA BACKEND
// =============================================================================

// OllamaConfig holds configuration for the local Ollama backend.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434).
	// Uses the explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows.
	BaseURL string

	// Model is the model used for judgments (default: "llama3.1:8b").
	Model string

	// Timeout for judgment requests (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles judgment calls so a burst of exports
	// cannot saturate the local server (default: 2, burst 4).
	RequestsPerSecond float64
}

// DefaultOllamaConfig returns the default Ollama backend configuration.
func DefaultOllamaConfig() *OllamaConfig {
	return &OllamaConfig{
		BaseURL:           "http://127.0.0.1:11434",
		Model:             "llama3.1:8b",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 2,
	}
}

// OllamaJudge implements Judge against a local Ollama server using the
// /api/chat endpoint in JSON mode. Safe for concurrent use.
type OllamaJudge struct {
	config     *OllamaConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOllamaJudge creates an Ollama-backed judge.
func NewOllamaJudge(config *OllamaConfig) *OllamaJudge {
	if config == nil {
		config = DefaultOllamaConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Model == "" {
		config.Model = "llama3.1:8b"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2
	}

	return &OllamaJudge{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 4),
	}
}

// ClassifyIntent implements Judge.
func (j *OllamaJudge) ClassifyIntent(ctx context.Context, instruction string) (IntentJudgment, error) {
	raw, err := j.chatJSON(ctx, classifySystem, classifyUser(instruction))
	if err != nil {
		return IntentJudgment{}, err
	}
	return decodeIntent(raw)
}

// ExtractFormatting implements Judge.
func (j *OllamaJudge) ExtractFormatting(ctx context.Context, instruction, format string, hints []AttributeHint) (map[string]any, error) {
	raw, err := j.chatJSON(ctx, extractSystem(format, hints), extractUser(instruction))
	if err != nil {
		return nil, err
	}
	return decodeAttributes(raw)
}

// Chat sends a free-form conversation and returns the assistant reply.
// This is plain generation, not a judgment: no JSON mode, same throttle.
func (j *OllamaJudge) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	msgs := make([]ollamaMessage, len(messages))
	for i, m := range messages {
		msgs[i] = ollamaMessage{Role: m.Role, Content: m.Content}
	}
	return j.chat(ctx, "", msgs)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// chatJSON sends a non-streaming chat request in JSON mode and returns the
// model's message content.
func (j *OllamaJudge) chatJSON(ctx context.Context, system, user string) (string, error) {
	return j.chat(ctx, "json", []ollamaMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

func (j *OllamaJudge) chat(ctx context.Context, format string, messages []ollamaMessage) (string, error) {
	if err := j.limiter.Wait(ctx); err != nil {
		return "", &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait aborted", Cause: err}
	}

	reqBody := ollamaChatRequest{
		Model:    j.config.Model,
		Messages: messages,
		Stream:   false,
		Format:   format,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrModelNotFound
	}

	if resp.StatusCode != http.StatusOK {
		var oerr ollamaError
		if err := json.NewDecoder(resp.Body).Decode(&oerr); err == nil && oerr.Error != "" {
			return "", &ClientError{Type: ErrTypeInvalidResponse, Message: oerr.Error}
		}
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "chat request failed: " + resp.Status}
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Message.Content, nil
}
