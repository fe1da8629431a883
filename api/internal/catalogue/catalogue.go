// Package catalogue serves the static sample plant list.
package catalogue

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plants.yaml
var plantsYAML []byte

// Plant is one catalogue entry.
type Plant struct {
	ID               string   `json:"id" yaml:"id"`
	CommonName       string   `json:"commonName" yaml:"commonName"`
	ScientificName   string   `json:"scientificName" yaml:"scientificName"`
	Family           string   `json:"family" yaml:"family"`
	Description      string   `json:"description" yaml:"description"`
	CareInstructions string   `json:"careInstructions" yaml:"careInstructions"`
	NativeRegions    []string `json:"nativeRegions" yaml:"nativeRegions"`
	Toxicity         string   `json:"toxicity" yaml:"toxicity"`
	ImageURL         *string  `json:"imageUrl" yaml:"imageUrl"`
}

// Catalogue is read-only after Load.
type Catalogue struct {
	plants []Plant
	byID   map[string]int
}

// Load decodes the embedded catalogue.
func Load() (*Catalogue, error) {
	return Parse(plantsYAML)
}

// MustLoad panics if the embedded catalogue is broken.
func MustLoad() *Catalogue {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalogue, error) {
	var plants []Plant
	if err := yaml.Unmarshal(data, &plants); err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	c := &Catalogue{plants: plants, byID: make(map[string]int, len(plants))}
	for i, p := range plants {
		if p.ID == "" {
			return nil, fmt.Errorf("catalogue: entry %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalogue: duplicate id %q", p.ID)
		}
		if p.NativeRegions == nil {
			c.plants[i].NativeRegions = []string{}
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns every entry in catalogue order.
func (c *Catalogue) All() []Plant {
	out := make([]Plant, len(c.plants))
	copy(out, c.plants)
	return out
}

// Filter keeps entries with a native region containing location,
// case-insensitively. An empty location keeps everything.
func (c *Catalogue) Filter(location string) []Plant {
	if location == "" {
		return c.All()
	}
	needle := strings.ToLower(location)
	out := make([]Plant, 0, len(c.plants))
	for _, p := range c.plants {
		for _, r := range p.NativeRegions {
			if strings.Contains(strings.ToLower(r), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (c *Catalogue) ByID(id string) (Plant, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Plant{}, false
	}
	return c.plants[i], true
}
