package handle

import (
	"net/http"
	"strconv"
	"strings"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/metrics"
)

type plantsResponse struct {
	Plants []catalogue.Plant `json:"plants"`
	// Region is set when the location was derived from coordinates.
	Region string `json:"region,omitempty"`
}

// Plants serves GET /api/plants. The location query filters by region
// substring; lat and lng are mapped to a region when location is absent.
func (h *Handle) Plants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only", "")
		return
	}
	metrics.CatalogueTotal.WithLabelValues("list").Inc()

	q := r.URL.Query()
	location := q.Get("location")
	var region string
	if location == "" && (q.Get("lat") != "" || q.Get("lng") != "") {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(q.Get("lng")), 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			writeError(w, http.StatusBadRequest, "Invalid coordinates", "")
			return
		}
		region = catalogue.RegionFor(lat, lng)
		location = region
	}

	writeJSON(w, http.StatusOK, plantsResponse{
		Plants: h.plants.Filter(location),
		Region: region,
	})
}

// Plant serves GET /api/plants/{id}.
func (h *Handle) Plant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only", "")
		return
	}
	metrics.CatalogueTotal.WithLabelValues("get").Inc()

	p, ok := h.plants.ByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Plant not found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
