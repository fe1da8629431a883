package vision

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	key   string
	reply string
	err   error
	calls int
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }
func (f *fakeEngine) Configured() bool { return f.key != "" }

func (f *fakeEngine) Identify(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

const roseReply = `Sure, here you go:
{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"A flowering shrub.","family":"Rosaceae","nativeRegions":["Asia"],"careInstructions":"Full sun, regular watering."}
Hope that helps!`

func TestParseReply_Fenced(t *testing.T) {
	out, err := ParseReply("```json\n" + `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"","nativeRegions":["Asia"],"careInstructions":""}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Rose", out.CommonName)
	assert.Equal(t, "Rosa", out.ScientificName)
	assert.Equal(t, 92.0, out.Confidence)
	assert.Equal(t, []string{"Asia"}, out.NativeRegions)
}

func TestParseReply_Prose(t *testing.T) {
	out, err := ParseReply(roseReply)
	require.NoError(t, err)
	assert.Equal(t, "Rosaceae", out.Family)
	assert.Equal(t, "Full sun, regular watering.", out.CareInstructions)
}

func TestParseReply_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no braces", "I cannot identify this plant."},
		{"reversed braces", "} nothing {"},
		{"two fragments", `{"commonName":"A"} and {"commonName":"B"}`},
		{"confidence out of range", `{"commonName":"Rose","scientificName":"Rosa","confidence":150}`},
		{"negative confidence", `{"commonName":"Rose","scientificName":"Rosa","confidence":-1}`},
		{"confidence as string", `{"commonName":"Rose","scientificName":"Rosa","confidence":"92"}`},
		{"object care instructions", `{"commonName":"Rose","scientificName":"Rosa","confidence":90,"careInstructions":{"water":"weekly"}}`},
		{"missing common name", `{"scientificName":"Rosa","confidence":90}`},
		{"missing scientific name", `{"commonName":"Rose","confidence":90}`},
		{"missing confidence", `{"commonName":"Rose","scientificName":"Rosa"}`},
		{"missing description", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"family":"Rosaceae","nativeRegions":[],"careInstructions":""}`},
		{"missing family", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","nativeRegions":[],"careInstructions":""}`},
		{"missing native regions", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"Rosaceae","careInstructions":""}`},
		{"null native regions", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"Rosaceae","nativeRegions":null,"careInstructions":""}`},
		{"missing care instructions", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"Rosaceae","nativeRegions":[]}`},
		{"suggestion without confidence", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"","nativeRegions":[],"careInstructions":"","suggestions":[{"name":"X","scientificName":"x"}]}`},
		{"suggestion without name", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"","nativeRegions":[],"careInstructions":"","suggestions":[{"scientificName":"x","confidence":5}]}`},
		{"suggestion without scientific name", `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"","nativeRegions":[],"careInstructions":"","suggestions":[{"name":"X","confidence":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReply(tt.reply)
			require.Error(t, err)
			assert.True(t, IsParse(err), "want ParseError, got %T", err)
			assert.False(t, IsUpstream(err))
		})
	}
}

func TestParseReply_TolerantFields(t *testing.T) {
	out, err := ParseReply(`{"commonName":"","scientificName":"","confidence":0,"extra":{"a":1},
		"description":"","family":"","nativeRegions":[],"careInstructions":"",
		"suggestions":[{"name":"B","scientificName":"b","confidence":10},{"name":"A","scientificName":"a","confidence":40}]}`)
	require.NoError(t, err)
	assert.Empty(t, out.CommonName)
	assert.Equal(t, []string{}, out.NativeRegions)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, "A", out.Suggestions[0].Name)
}

func TestIdentify_Demo(t *testing.T) {
	eng := &fakeEngine{}
	first, err := Identify(context.Background(), eng, "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	second, err := Identify(context.Background(), eng, "data:image/jpeg;base64,BBBB")
	require.NoError(t, err)

	assert.Equal(t, 0, eng.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "Demo Plant (not configured)", first.CommonName)
	assert.Equal(t, 75.0, first.Confidence)

	raw, err := json.Marshal(first)
	require.NoError(t, err)
	back, err := ParseReply(string(raw))
	require.NoError(t, err)
	assert.Equal(t, first, back)
}

func TestIdentify_NilEngineIsDemo(t *testing.T) {
	out, err := Identify(context.Background(), nil, "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "Plantus demonstratus", out.ScientificName)
}

func TestIdentify_Live(t *testing.T) {
	eng := &fakeEngine{key: "k", reply: roseReply}
	out, err := Identify(context.Background(), eng, "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, "Rose", out.CommonName)
}

func TestIdentify_Upstream(t *testing.T) {
	eng := &fakeEngine{key: "k", err: errors.New("Incorrect API key provided")}
	_, err := Identify(context.Background(), eng, "data:image/jpeg;base64,AAAA")
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestIdentify_Parse(t *testing.T) {
	eng := &fakeEngine{key: "k", reply: "I am not sure."}
	_, err := Identify(context.Background(), eng, "data:image/jpeg;base64,AAAA")
	require.Error(t, err)
	assert.True(t, IsParse(err))
}

func TestGetEngine(t *testing.T) {
	a, b := &fakeEngine{key: "a"}, &fakeEngine{key: "b"}
	e := &Engines{OpenAI: a, Gemini: b}

	got, err := e.GetEngine("")
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = e.GetEngine("Gemini")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = e.GetEngine("claude")
	assert.Error(t, err)
}
