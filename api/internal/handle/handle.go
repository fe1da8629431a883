package handle

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/apex/log"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/util"
	"plant-id/api/internal/vision"
	"plant-id/api/internal/vision/types"
)

type Options struct {
	// Provider is the engine used when the request does not name one.
	Provider string
	// RequestTimeout bounds the provider call; 0 means no deadline.
	RequestTimeout time.Duration
	// MaxImageBytes caps the decoded image size.
	MaxImageBytes int64
}

type Handle struct {
	engs   *vision.Engines
	plants *catalogue.Catalogue
	opts   Options
}

func New(engs *vision.Engines, plants *catalogue.Catalogue, opts Options) *Handle {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 20 << 20
	}
	return &Handle{
		engs:   engs,
		plants: plants,
		opts:   opts,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg, details string) {
	writeJSON(w, code, types.ErrorResponse{Error: msg, Details: details})
}

func requestLogger(r *http.Request) *log.Entry {
	return log.WithFields(log.Fields{
		"request_id": util.RequestID(r.Context()),
		"path":       r.URL.Path,
	})
}

// maxOverride caps a per-request timeout when no server timeout is set.
const maxOverride = 10 * time.Minute

// deadline resolves the provider deadline: X-Request-Timeout header, then
// the timeoutSec query parameter, then the configured default. A request may
// shorten the configured timeout but never extend it.
func (h *Handle) deadline(r *http.Request) time.Duration {
	ts := r.Header.Get("X-Request-Timeout")
	if ts == "" {
		ts = r.URL.Query().Get("timeoutSec")
	}
	limit := h.opts.RequestTimeout
	if limit <= 0 {
		limit = maxOverride
	}
	v, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || v <= 0 {
		return h.opts.RequestTimeout
	}
	if v >= int64(limit/time.Second) {
		return limit
	}
	return time.Duration(v) * time.Second
}
