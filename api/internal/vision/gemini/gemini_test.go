package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0}

func TestLoadImage_DataURL(t *testing.T) {
	e := New("k", "")
	b, mime, err := e.loadImage(context.Background(), "data:image/png;base64,iVBORw0KGgoAAA==")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader[:8], b[:8])
}

func TestLoadImage_BareBase64(t *testing.T) {
	e := New("k", "")
	_, mime, err := e.loadImage(context.Background(), "iVBORw0KGgoAAA==")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestLoadImage_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	e := New("k", "")
	b, mime, err := e.loadImage(context.Background(), srv.URL+"/leaf.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader, b)
}

func TestLoadImage_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := New("k", "").loadImage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestLoadImage_Malformed(t *testing.T) {
	_, _, err := New("k", "").loadImage(context.Background(), "data:image/png,notbase64")
	assert.Error(t, err)
}

func TestFirstText(t *testing.T) {
	assert.Empty(t, firstText(nil))
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"commonName":"Rose"}`)}}},
		},
	}
	assert.Equal(t, `{"commonName":"Rose"}`, firstText(resp))
}

func TestDefaults(t *testing.T) {
	e := New("", "")
	assert.False(t, e.Configured())
	assert.Equal(t, DefaultModel, e.GetModel())
	assert.Equal(t, "gemini", e.Name())
}
