// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// OPENROUTER BACKEND
// =============================================================================

const (
	// DefaultOpenRouterURL is the base URL for the OpenRouter API.
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

	// maxResponseSize caps judgment response bodies. A judgment is a
	// handful of JSON fields; anything near this limit is garbage.
	maxResponseSize = 1 * 1024 * 1024
)

// Shared pooled HTTP client for all OpenRouter judges.
var openRouterHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: 60 * time.Second,
}

// OpenRouterConfig holds configuration for the hosted backend.
type OpenRouterConfig struct {
	// BaseURL of the OpenAI-compatible API (default: DefaultOpenRouterURL).
	BaseURL string

	// APIKey authenticates requests. Required.
	APIKey string

	// Model identifier (default: "openrouter/auto").
	Model string

	// RequestsPerSecond throttles judgment calls (default: 2, burst 4).
	RequestsPerSecond float64
}

// OpenRouterJudge implements Judge against an OpenAI-compatible
// chat/completions endpoint in JSON-object mode. Safe for concurrent use.
type OpenRouterJudge struct {
	config  *OpenRouterConfig
	limiter *rate.Limiter
}

// NewOpenRouterJudge creates a hosted judge.
func NewOpenRouterJudge(config *OpenRouterConfig) *OpenRouterJudge {
	if config == nil {
		config = &OpenRouterConfig{}
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultOpenRouterURL
	}
	if config.Model == "" {
		config.Model = "openrouter/auto"
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2
	}

	return &OpenRouterJudge{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 4),
	}
}

// ClassifyIntent implements Judge.
func (j *OpenRouterJudge) ClassifyIntent(ctx context.Context, instruction string) (IntentJudgment, error) {
	raw, err := j.chatJSON(ctx, classifySystem, classifyUser(instruction))
	if err != nil {
		return IntentJudgment{}, err
	}
	return decodeIntent(raw)
}

// ExtractFormatting implements Judge.
func (j *OpenRouterJudge) ExtractFormatting(ctx context.Context, instruction, format string, hints []AttributeHint) (map[string]any, error) {
	raw, err := j.chatJSON(ctx, extractSystem(format, hints), extractUser(instruction))
	if err != nil {
		return nil, err
	}
	return decodeAttributes(raw)
}

// Chat sends a free-form conversation and returns the assistant reply.
// Plain generation: no response_format constraint.
func (j *OpenRouterJudge) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	msgs := make([]openRouterMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openRouterMessage{Role: m.Role, Content: m.Content}
	}
	return j.send(ctx, openRouterRequest{Model: j.config.Model, Messages: msgs})
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterResponseFormat struct {
	Type string `json:"type"`
}

type openRouterRequest struct {
	Model          string                    `json:"model"`
	Messages       []openRouterMessage       `json:"messages"`
	ResponseFormat *openRouterResponseFormat `json:"response_format,omitempty"`
}

type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (j *OpenRouterJudge) chatJSON(ctx context.Context, system, user string) (string, error) {
	return j.send(ctx, openRouterRequest{
		Model: j.config.Model,
		Messages: []openRouterMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &openRouterResponseFormat{Type: "json_object"},
	})
}

func (j *OpenRouterJudge) send(ctx context.Context, reqBody openRouterRequest) (string, error) {
	if j.config.APIKey == "" {
		return "", ErrUnauthorized
	}
	if err := j.limiter.Wait(ctx); err != nil {
		return "", &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait aborted", Cause: err}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+j.config.APIKey)

	resp, err := openRouterHTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrModelNotFound
	case resp.StatusCode != http.StatusOK:
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "chat request failed: " + resp.Status}
	}

	var result openRouterResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Error != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: result.Error.Message}
	}
	if len(result.Choices) == 0 {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "empty response"}
	}

	return result.Choices[0].Message.Content, nil
}
