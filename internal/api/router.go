// Package api serves the job submission form and read-only views of the
// queue and the result gallery over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voxca/internal/core"
	"voxca/internal/gallery"
	"voxca/internal/infra"
	"voxca/internal/runner"
)

// Queue is the part of the run loop the API drives.
type Queue interface {
	Enqueue(job core.ConfigJob) (int, error)
	Snapshot() runner.Snapshot
}

// Server holds the handler dependencies.
type Server struct {
	Queue   Queue
	Gallery *gallery.Gallery
	Log     infra.Logger
}

// NewRouter wires all routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(s.Log),
	)

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/form", s.Form)

	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", s.SubmitJob)
		r.Get("/", s.ListJobs)
	})
	r.Route("/results", func(r chi.Router) {
		r.Get("/", s.ListResults)
		r.Get("/{index}", s.GetResult)
		r.Get("/{index}/board", s.GetBoard)
		r.Get("/{index}/scene", s.GetScene)
	})
	return r
}

func requestLogger(log infra.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
