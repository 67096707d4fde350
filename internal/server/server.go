// Package server exposes the verdict, wizard, zone, and content APIs over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/content"
	"github.com/meridian-legal/pfas-intake/internal/intake"
	"github.com/meridian-legal/pfas-intake/internal/verdict"
	"github.com/meridian-legal/pfas-intake/internal/zone"
)

// Options configures the server beyond its collaborators.
type Options struct {
	CORSOrigins      []string
	BatchConcurrency int
	BatchMaxCoords   int
}

// Server routes HTTP requests to the intake core.
type Server struct {
	verdicts *verdict.Service
	sessions *intake.SessionManager
	sink     intake.Sink
	catalog  *zone.Catalog
	library  *content.Library
	opts     Options
	router   chi.Router
}

// New assembles the router with all middleware and routes.
func New(
	verdicts *verdict.Service,
	sessions *intake.SessionManager,
	sink intake.Sink,
	catalog *zone.Catalog,
	library *content.Library,
	opts Options,
) *Server {
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 4
	}
	if opts.BatchMaxCoords <= 0 {
		opts.BatchMaxCoords = 100
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{
		verdicts: verdicts,
		sessions: sessions,
		sink:     sink,
		catalog:  catalog,
		library:  library,
		opts:     opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/geolocation", s.handleGeolocation)
		r.Post("/geolocation/batch", s.handleGeolocationBatch)

		r.Get("/zones", s.handleZones)
		r.Get("/zones.geojson", s.handleZonesGeoJSON)

		r.Route("/claims", func(r chi.Router) {
			r.Post("/", s.handleCreateClaim)
			r.Get("/{id}", s.handleGetClaim)
			r.Put("/{id}/sections/{section}", s.handleSetSection)
			r.Post("/{id}/next", s.handleNext)
			r.Post("/{id}/previous", s.handlePrevious)
			r.Post("/{id}/submit", s.handleSubmit)
		})

		r.Get("/content/settlements", s.handleSettlements)
		r.Get("/content/testimonials", s.handleTestimonials)
	})

	s.router = r
	return s
}

// Handler returns the assembled http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs each request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
