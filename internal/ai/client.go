// Package ai talks to an optional external text-generation service that
// turns aggregated vitals into a narrative summary. The service is
// opaque: one JSON POST carrying a prompt, one JSON reply carrying the
// generated text. Failures are returned to the caller, who degrades to
// a locally rendered sentence; nothing is ever retried.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client posts prompts to a single completion endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns nil when no URL is configured; callers treat a nil
// client as "external summaries disabled".
func NewClient(url string) *Client {
	if url == "" {
		return nil
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Summarize posts the prompt and returns the generated text. Any
// transport error, non-200 status or empty completion is an error.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text generation: unexpected status %d", resp.StatusCode)
	}
	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", errors.New("text generation: empty completion")
	}
	return out.Text, nil
}
