package types

import (
	"encoding/json"
	"fmt"
)

// identificationDoc mirrors Identification with pointers for every key the
// reply schema lists as required.
type identificationDoc struct {
	CommonName       *string         `json:"commonName"`
	ScientificName   *string         `json:"scientificName"`
	Confidence       *float64        `json:"confidence"`
	Description      *string         `json:"description"`
	Family           *string         `json:"family"`
	NativeRegions    *[]string       `json:"nativeRegions"`
	CareInstructions *string         `json:"careInstructions"`
	Toxicity         string          `json:"toxicity"`
	Suggestions      []suggestionDoc `json:"suggestions"`
}

type suggestionDoc struct {
	Name           *string  `json:"name"`
	ScientificName *string  `json:"scientificName"`
	Confidence     *float64 `json:"confidence"`
}

// DecodeIdentification decodes one JSON object into a validated
// Identification. Every required key must be present (empty strings are
// fine, null is not); unknown keys are ignored.
func DecodeIdentification(data []byte) (*Identification, error) {
	var doc identificationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bad JSON: %w", err)
	}

	missing := func(key string) error {
		return fmt.Errorf("%s is required", key)
	}
	switch {
	case doc.CommonName == nil:
		return nil, missing("commonName")
	case doc.ScientificName == nil:
		return nil, missing("scientificName")
	case doc.Confidence == nil:
		return nil, missing("confidence")
	case doc.Description == nil:
		return nil, missing("description")
	case doc.Family == nil:
		return nil, missing("family")
	case doc.NativeRegions == nil:
		return nil, missing("nativeRegions")
	case doc.CareInstructions == nil:
		return nil, missing("careInstructions")
	}

	out := &Identification{
		CommonName:       *doc.CommonName,
		ScientificName:   *doc.ScientificName,
		Confidence:       *doc.Confidence,
		Description:      *doc.Description,
		Family:           *doc.Family,
		NativeRegions:    *doc.NativeRegions,
		CareInstructions: *doc.CareInstructions,
		Toxicity:         doc.Toxicity,
	}
	for i, s := range doc.Suggestions {
		switch {
		case s.Name == nil:
			return nil, missing(fmt.Sprintf("suggestions[%d].name", i))
		case s.ScientificName == nil:
			return nil, missing(fmt.Sprintf("suggestions[%d].scientificName", i))
		case s.Confidence == nil:
			return nil, missing(fmt.Sprintf("suggestions[%d].confidence", i))
		}
		out.Suggestions = append(out.Suggestions, Suggestion{
			Name:           *s.Name,
			ScientificName: *s.ScientificName,
			Confidence:     *s.Confidence,
		})
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
