package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"plant-id/api/internal/prompt"
	"plant-id/api/internal/util"
)

const (
	DefaultModel = "gemini-2.5-flash"
	// maxDownload caps images fetched from http(s) URLs.
	maxDownload = 20 << 20
)

type Engine struct {
	APIKey    string
	Model     string
	MaxTokens int
	httpc     *http.Client
}

func New(apiKey, model string) *Engine {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }
func (e *Engine) Configured() bool { return e.APIKey != "" }

func (e *Engine) Identify(ctx context.Context, image string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	img, mime, err := e.loadImage(ctx, image)
	if err != nil {
		return "", err
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	if e.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(e.MaxTokens))
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(prompt.Identify),
		&genai.Blob{MIMEType: mime, Data: img},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	txt := strings.TrimSpace(firstText(resp))
	if txt == "" {
		return "", errors.New("No response from Gemini")
	}
	return txt, nil
}

// loadImage returns raw bytes and MIME type for a data URI, an http(s) URL
// or bare base64.
func (e *Engine) loadImage(ctx context.Context, image string) ([]byte, string, error) {
	switch {
	case util.IsDataURL(image):
		b, mime, err := util.DecodeDataURL(image)
		if err != nil {
			return nil, "", fmt.Errorf("gemini: bad data URL: %w", err)
		}
		if mime == "" {
			mime = util.SniffImageMIME(b)
		}
		return b, mime, nil
	case util.IsHTTPURL(image):
		b, err := e.download(ctx, strings.TrimSpace(image))
		if err != nil {
			return nil, "", fmt.Errorf("gemini: download image: %w", err)
		}
		return b, util.SniffImageMIME(b), nil
	default:
		b, err := util.DecodeBase64(image)
		if err != nil {
			return nil, "", fmt.Errorf("gemini: bad base64: %w", err)
		}
		return b, util.SniffImageMIME(b), nil
	}
}

func (e *Engine) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxDownload {
		return nil, fmt.Errorf("image exceeds %d bytes", maxDownload)
	}
	return b, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
