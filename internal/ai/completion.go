// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Aljon0/AI-RB-API/internal/skills"
)

// ErrRateLimited is returned when the upstream API reports throttling, either
// via HTTP 429 or a "rate limit" marker in the error body. Callers may retry;
// every other error means the request should not be retried.
var ErrRateLimited = errors.New("rate limited by upstream")

const defaultBaseURL = "https://api.openai.com"

// Completer turns a job title into a list of skill suggestions.
type Completer interface {
	Complete(ctx context.Context, title string) ([]string, error)
}

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient creates a client for the Chat Completions API.
// baseURL may be empty to use the real API; tests point it at a stub server.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete asks the model for 8-12 skills matching the job title.
// A response that cannot be parsed into a skill list is not an error: the
// deterministic fallback list for the title is returned instead.
func (c *OpenAIClient) Complete(ctx context.Context, title string) ([]string, error) {
	prompt := fmt.Sprintf(
		"List 8-12 professional skills for the job title %q. "+
			"Return ONLY a JSON array of strings, no other text.", title)

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a career assistant that suggests professional skills for job titles. Always return ONLY valid JSON, no other text.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  256,
		"temperature": 0.7,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests ||
			strings.Contains(strings.ToLower(string(body)), "rate limit") {
			return nil, fmt.Errorf("%w: status %d - %s", ErrRateLimited, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("OpenAI API error: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)

	parsed := ParseSkills(content)
	if len(parsed) == 0 {
		log.Printf("Complete: could not parse skills from response for title=%q, using fallback", title)
		return skills.Fallback(title), nil
	}

	return parsed, nil
}
