package httpserver

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/apex/log"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"

	"plant-id/api/internal/util"
	"plant-id/api/internal/vision/types"
)

const headerRequestID = "X-Request-Id"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(util.WithRequestID(r.Context(), id)))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		entry := log.WithFields(log.Fields{
			"request_id": util.RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     m.Code,
			"bytes":      m.Written,
			"duration":   m.Duration.String(),
		})
		if m.Code >= http.StatusInternalServerError {
			entry.Warn("request")
			return
		}
		entry.Info("request")
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.WithFields(log.Fields{
					"request_id": util.RequestID(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				}).Error("handler panic")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func enableCORS(origin string, next http.Handler) http.Handler {
	if origin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Timeout, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", headerRequestID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
