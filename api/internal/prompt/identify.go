// Package prompt holds the instruction text sent to vision providers and the
// JSON schema the reply must follow.
package prompt

// Version is bumped whenever Identify or IdentifySchema change.
const Version = "identify.v1"

// IdentifySchema describes the reply object.
const IdentifySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "PlantIdentification",
  "type": "object",
  "required": ["commonName", "scientificName", "confidence", "description", "family", "nativeRegions", "careInstructions"],
  "properties": {
    "commonName":       {"type": "string"},
    "scientificName":   {"type": "string"},
    "confidence":       {"type": "number", "minimum": 0, "maximum": 100},
    "description":      {"type": "string"},
    "family":           {"type": "string"},
    "nativeRegions":    {"type": "array", "items": {"type": "string"}},
    "careInstructions": {"type": "string"},
    "toxicity":         {"type": "string"},
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "scientificName", "confidence"],
        "properties": {
          "name":           {"type": "string"},
          "scientificName": {"type": "string"},
          "confidence":     {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    }
  }
}`

// Identify is the user instruction that accompanies the image.
const Identify = `You are a botanical expert. Analyze this plant image and provide identification in JSON format with these fields:

{
  "commonName": "common name of the plant",
  "scientificName": "scientific name (genus species)",
  "confidence": confidence percentage (0-100),
  "description": "brief description of the plant",
  "family": "botanical family",
  "nativeRegions": ["array", "of", "native regions"],
  "careInstructions": "brief care tips",
  "toxicity": "toxicity information",
  "suggestions": [
    {"name": "alternative common name", "scientificName": "genus species", "confidence": confidence percentage (0-100)}
  ]
}

If you cannot identify the plant with confidence, say so honestly and provide your best guess with lower confidence. Never refuse: always return the JSON object above.
careInstructions is a single string. confidence is a number between 0 and 100.
Return ONLY the JSON, no other text.

JSON schema of the reply:
` + IdentifySchema
