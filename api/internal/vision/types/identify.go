package types

import (
	"fmt"
	"sort"
	"strings"

	"plant-id/api/internal/util"
)

const (
	MinConfidence = 0
	MaxConfidence = 100
)

// IdentifyRequest is the body of POST /api/identify.
type IdentifyRequest struct {
	Image string `json:"image"` // data URI or http(s) URL
}

// Identification is the flat result schema: careInstructions is free text
// and confidence is a percentage.
type Identification struct {
	CommonName       string       `json:"commonName"`
	ScientificName   string       `json:"scientificName"`
	Confidence       float64      `json:"confidence"` // 0..100
	Description      string       `json:"description"`
	Family           string       `json:"family"`
	NativeRegions    []string     `json:"nativeRegions"`
	CareInstructions string       `json:"careInstructions"`
	Toxicity         string       `json:"toxicity,omitempty"`
	Suggestions      []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion is an alternate candidate.
type Suggestion struct {
	Name           string  `json:"name"`
	ScientificName string  `json:"scientificName"`
	Confidence     float64 `json:"confidence"` // 0..100
}

// ErrorResponse is the body of every non-success response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Validate checks confidence ranges and brings the value to canonical form:
// nativeRegions is never null and suggestions are ordered by descending
// confidence.
func (r *Identification) Validate() error {
	if err := checkConfidence("confidence", r.Confidence); err != nil {
		return err
	}
	for i, s := range r.Suggestions {
		if err := checkConfidence(fmt.Sprintf("suggestions[%d].confidence", i), s.Confidence); err != nil {
			return err
		}
	}
	if r.NativeRegions == nil {
		r.NativeRegions = []string{}
	}
	sort.SliceStable(r.Suggestions, func(i, j int) bool {
		return r.Suggestions[i].Confidence > r.Suggestions[j].Confidence
	})
	return nil
}

func checkConfidence(field string, v float64) error {
	if v < MinConfidence || v > MaxConfidence {
		return fmt.Errorf("%s must be between %d and %d, got %v", field, MinConfidence, MaxConfidence, v)
	}
	return nil
}

// ImageURL returns the payload in a form a provider accepts as an image URL.
// Data URIs and http(s) URLs pass through; bare base64 is treated as JPEG.
func ImageURL(payload string) string {
	p := strings.TrimSpace(payload)
	if util.IsDataURL(p) || util.IsHTTPURL(p) {
		return p
	}
	return "data:image/jpeg;base64," + p
}
