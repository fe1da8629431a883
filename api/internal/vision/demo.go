package vision

import "plant-id/api/internal/vision/types"

// Demo is the placeholder answer served while no provider credential is
// configured. Each call returns a fresh value.
func Demo() *types.Identification {
	return &types.Identification{
		CommonName:       "Demo Plant (not configured)",
		ScientificName:   "Plantus demonstratus",
		Confidence:       75,
		Description:      "Configure OPENAI_API_KEY (or GEMINI_API_KEY with PROVIDER=gemini) to enable real plant identification.",
		Family:           "Demo Family",
		NativeRegions:    []string{"Demonstration Mode"},
		CareInstructions: "Add your provider API key to enable real identification",
	}
}
