package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plant-id/api/internal/handle"
)

type Options struct {
	// CORSOrigin is sent as Access-Control-Allow-Origin; empty disables CORS.
	CORSOrigin  string
	HealthzBody string
}

// New wires the service routes behind the common middleware.
func New(h *handle.Handle, opts Options) http.Handler {
	if opts.HealthzBody == "" {
		opts.HealthzBody = "ok"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(opts.HealthzBody))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/identify", h.Identify)
	mux.HandleFunc("/api/plants", h.Plants)
	mux.HandleFunc("/api/plants/{id}", h.Plant)

	var next http.Handler = mux
	next = enableCORS(opts.CORSOrigin, next)
	next = recoverer(next)
	next = accessLog(next)
	next = requestID(next)
	return next
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to 30 seconds.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
