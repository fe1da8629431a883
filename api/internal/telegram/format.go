package telegram

import (
	"fmt"
	"strings"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/vision/types"
)

// FormatIdentification renders a result as a plain text chat message.
func FormatIdentification(res *types.Identification) string {
	var b strings.Builder
	name := strings.TrimSpace(res.CommonName)
	if name == "" {
		name = "Unknown plant"
	}
	fmt.Fprintf(&b, "🌿 %s", name)
	if s := strings.TrimSpace(res.ScientificName); s != "" {
		fmt.Fprintf(&b, " (%s)", s)
	}
	fmt.Fprintf(&b, "\nConfidence: %.0f%%", res.Confidence)
	if res.Confidence < 50 {
		b.WriteString(" (low, treat as a best guess)")
	}
	writeField(&b, "Family", res.Family)
	if len(res.NativeRegions) > 0 {
		writeField(&b, "Native regions", strings.Join(res.NativeRegions, ", "))
	}
	if d := strings.TrimSpace(res.Description); d != "" {
		b.WriteString("\n\n")
		b.WriteString(d)
	}
	writeField(&b, "\nCare", res.CareInstructions)
	writeField(&b, "Toxicity", res.Toxicity)
	if len(res.Suggestions) > 0 {
		b.WriteString("\n\nOther candidates:")
		for _, s := range res.Suggestions {
			fmt.Fprintf(&b, "\n• %s", s.Name)
			if s.ScientificName != "" {
				fmt.Fprintf(&b, " (%s)", s.ScientificName)
			}
			fmt.Fprintf(&b, " %.0f%%", s.Confidence)
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		fmt.Fprintf(b, "\n%s: %s", label, v)
	}
}

// FormatPlants renders a catalogue listing.
func FormatPlants(region string, plants []catalogue.Plant) string {
	if len(plants) == 0 {
		if region == "" {
			return "The catalogue is empty."
		}
		return fmt.Sprintf("No plants found for %q.", region)
	}
	var b strings.Builder
	if region == "" {
		b.WriteString("🌱 All plants:")
	} else {
		fmt.Fprintf(&b, "🌱 Plants native to %s:", region)
	}
	for _, p := range plants {
		fmt.Fprintf(&b, "\n• %s (%s)", p.CommonName, p.ScientificName)
		if p.CareInstructions != "" {
			fmt.Fprintf(&b, "\n  %s", p.CareInstructions)
		}
	}
	return b.String()
}
