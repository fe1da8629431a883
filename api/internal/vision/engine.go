package vision

import (
	"context"
	"fmt"
	"strings"
)

// Engine is one vision provider. Identify sends the fixed prompt together
// with the image and returns the model's raw reply text.
type Engine interface {
	Name() string
	GetModel() string
	// Configured reports whether a provider credential is present.
	Configured() bool
	Identify(ctx context.Context, image string) (string, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) GetEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gpt", "openai":
		return e.OpenAI, nil
	case "gemini":
		return e.Gemini, nil
	default:
		return nil, fmt.Errorf("unknown provider %q; use 'openai' or 'gemini'", name)
	}
}

// Available reports whether eng can serve live requests. Without it the
// pipeline answers with Demo.
func Available(eng Engine) bool {
	return eng != nil && eng.Configured()
}
