package catalogue

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const UnknownRegion = "Unknown"

type region struct {
	name string
	rect s2.Rect
}

func boxDegrees(latLo, latHi, lngLo, lngHi float64) s2.Rect {
	lo := s2.LatLngFromDegrees(latLo, lngLo)
	hi := s2.LatLngFromDegrees(latHi, lngHi)
	return s2.Rect{
		Lat: r1.Interval{Lo: lo.Lat.Radians(), Hi: hi.Lat.Radians()},
		Lng: s1.Interval{Lo: lo.Lng.Radians(), Hi: hi.Lng.Radians()},
	}
}

// Checked in order; the first box containing the point wins, so overlaps
// resolve to the earlier entry.
var regions = []region{
	{"North America", boxDegrees(25, 50, -130, -60)},
	{"Central America", boxDegrees(-5, 25, -120, -30)},
	{"South America", boxDegrees(-60, -5, -85, -30)},
	{"Europe", boxDegrees(35, 72, -25, 45)},
	{"Africa", boxDegrees(-40, 38, -20, 55)},
	{"Asia", boxDegrees(0, 55, 45, 150)},
	{"South Asia", boxDegrees(5, 40, 65, 100)},
	{"Southeast Asia", boxDegrees(-10, 25, 90, 145)},
	{"Australia", boxDegrees(-50, -10, 110, 180)},
}

// RegionFor maps coordinates in degrees to a rough region name.
func RegionFor(lat, lng float64) string {
	ll := s2.LatLngFromDegrees(lat, lng)
	for _, r := range regions {
		if r.rect.ContainsLatLng(ll) {
			return r.name
		}
	}
	return UnknownRegion
}
