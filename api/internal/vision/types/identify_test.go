package types

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentification_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Identification
		wantErr bool
	}{
		{name: "lower bound", in: Identification{Confidence: 0}},
		{name: "upper bound", in: Identification{Confidence: 100}},
		{name: "above range", in: Identification{Confidence: 100.5}, wantErr: true},
		{name: "negative", in: Identification{Confidence: -1}, wantErr: true},
		{
			name: "bad suggestion",
			in: Identification{
				Confidence:  50,
				Suggestions: []Suggestion{{Name: "x", Confidence: 120}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIdentification_ValidateCanonicalizes(t *testing.T) {
	r := Identification{
		Confidence: 60,
		Suggestions: []Suggestion{
			{Name: "b", Confidence: 10},
			{Name: "a", Confidence: 40},
			{Name: "c", Confidence: 10},
		},
	}
	require.NoError(t, r.Validate())

	assert.NotNil(t, r.NativeRegions)
	assert.Empty(t, r.NativeRegions)
	names := []string{}
	for _, s := range r.Suggestions {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"nativeRegions":[]`)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AAAA", ImageURL("data:image/png;base64,AAAA"))
	assert.Equal(t, "https://example.com/rose.jpg", ImageURL(" https://example.com/rose.jpg "))
	assert.Equal(t, "data:image/jpeg;base64,AAAA", ImageURL("AAAA"))
}

func TestDecodeIdentification(t *testing.T) {
	out, err := DecodeIdentification([]byte(`{"commonName":"Rose","scientificName":"Rosa","confidence":92,
		"description":"","family":"Rosaceae","nativeRegions":[],"careInstructions":"Sun","unknown":true,
		"suggestions":[{"name":"B","scientificName":"b","confidence":10},{"name":"A","scientificName":"a","confidence":40}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Rosaceae", out.Family)
	assert.Equal(t, []string{}, out.NativeRegions)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, "A", out.Suggestions[0].Name)
}

func TestDecodeIdentification_MissingKeys(t *testing.T) {
	full := map[string]any{
		"commonName":       "Rose",
		"scientificName":   "Rosa",
		"confidence":       92,
		"description":      "",
		"family":           "",
		"nativeRegions":    []string{},
		"careInstructions": "",
	}
	for key := range full {
		t.Run(key, func(t *testing.T) {
			doc := map[string]any{}
			for k, v := range full {
				if k != key {
					doc[k] = v
				}
			}
			b, err := json.Marshal(doc)
			require.NoError(t, err)
			_, err = DecodeIdentification(b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestDecodeIdentification_SuggestionKeys(t *testing.T) {
	base := `{"commonName":"Rose","scientificName":"Rosa","confidence":92,"description":"","family":"","nativeRegions":[],"careInstructions":"","suggestions":[%s]}`
	for _, s := range []string{
		`{"name":"X","scientificName":"x"}`,
		`{"name":"X","confidence":5}`,
		`{"scientificName":"x","confidence":5}`,
	} {
		_, err := DecodeIdentification([]byte(fmt.Sprintf(base, s)))
		assert.Error(t, err, s)
	}
}
