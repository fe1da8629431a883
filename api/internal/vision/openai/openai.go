package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"plant-id/api/internal/prompt"
	"plant-id/api/internal/util"
	"plant-id/api/internal/vision/types"
)

const (
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 500
)

var errNoResponse = errors.New("No response from OpenAI")

type Engine struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	httpc     *http.Client
}

func New(key, model string) *Engine {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Engine{
		APIKey:    strings.TrimSpace(key),
		Model:     strings.TrimSpace(model),
		BaseURL:   DefaultBaseURL,
		MaxTokens: DefaultMaxTokens,
		// deadline comes from the request context
		httpc: &http.Client{},
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	e.httpc = c
	return e
}

func (e *Engine) Name() string     { return "openai" }
func (e *Engine) GetModel() string { return e.Model }
func (e *Engine) Configured() bool { return e.APIKey != "" }

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Identify sends one chat completion with the identification prompt and the
// image, and returns the assistant message text.
func (e *Engine) Identify(ctx context.Context, image string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("OPENAI_API_KEY is empty")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": prompt.Identify},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": types.ImageURL(image)}},
				},
			},
		},
		"max_tokens": e.MaxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(e.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var eb errorBody
		if json.Unmarshal(x, &eb) == nil && strings.TrimSpace(eb.Error.Message) != "" {
			return "", errors.New(eb.Error.Message)
		}
		return "", fmt.Errorf("openai %d: %s", resp.StatusCode, util.Truncate(strings.TrimSpace(string(x)), 512))
	}

	var raw chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(raw.Choices) == 0 {
		return "", errNoResponse
	}
	out := strings.TrimSpace(raw.Choices[0].Message.Content)
	if out == "" {
		return "", errNoResponse
	}
	return out, nil
}
