package catalogue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ps []Plant) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.CommonName)
	}
	return out
}

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	all := c.All()
	require.Len(t, all, 5)
	assert.Equal(t, "California Poppy", all[0].CommonName)
	assert.Equal(t, []string{"California", "North America"}, all[0].NativeRegions)
	assert.Nil(t, all[0].ImageURL)
}

func TestFilter(t *testing.T) {
	c := MustLoad()
	tests := []struct {
		location string
		want     []string
	}{
		{"california", []string{"California Poppy", "Coast Redwood"}},
		{"CALIFORNIA", []string{"California Poppy", "Coast Redwood"}},
		{"asia", []string{"Japanese Maple"}},
		{"africa", []string{"African Violet"}},
		{"america", []string{"California Poppy"}},
		{"atlantis", []string{}},
		{"", []string{"California Poppy", "Coast Redwood", "English Lavender", "Japanese Maple", "African Violet"}},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, names(c.Filter(tt.location)))
		})
	}
}

func TestFilter_EmptyResultEncodesAsArray(t *testing.T) {
	b, err := json.Marshal(MustLoad().Filter("atlantis"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestAll_IsACopy(t *testing.T) {
	c := MustLoad()
	all := c.All()
	all[0].CommonName = "changed"
	assert.Equal(t, "California Poppy", c.All()[0].CommonName)
}

func TestByID(t *testing.T) {
	c := MustLoad()
	p, ok := c.ByID("3")
	require.True(t, ok)
	assert.Equal(t, "Lavandula angustifolia", p.ScientificName)

	_, ok = c.ByID("42")
	assert.False(t, ok)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("- commonName: Nameless"))
	assert.Error(t, err)
	_, err = Parse([]byte("- id: \"1\"\n- id: \"1\""))
	assert.Error(t, err)
	_, err = Parse([]byte("{not: [yaml"))
	assert.Error(t, err)
}

func TestRegionFor(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{37.77, -122.42, "North America"},
		{19.43, -99.13, "Central America"},
		{-23.55, -46.63, "South America"},
		{48.85, 2.35, "Europe"},
		{-1.29, 36.82, "Africa"},
		{35.68, 139.69, "Asia"},
		{28.61, 77.21, "Asia"},
		{-33.87, 151.21, "Australia"},
		{-75.0, 0.0, "Unknown"},
		{50, -130, "North America"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegionFor(tt.lat, tt.lng), "%v,%v", tt.lat, tt.lng)
	}
}
