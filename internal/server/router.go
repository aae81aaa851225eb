// Package server exposes the scheduling core over HTTP for the web frontend.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/identity"
)

// timeNow is swapped out by tests that pin the current date.
var timeNow = time.Now

// NewRouter wires middleware and routes. Variation generation is open;
// everything touching the row store requires a verified identity.
func NewRouter(h *Handler, verifier *identity.Verifier, logger *zap.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/variations", h.GenerateVariations)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(verifier))
			r.Get("/schedule", h.GetSchedule)
			r.Post("/schedule", h.InsertItem)
			r.Delete("/schedule/{itemID}", h.DeleteItem)
			r.Get("/export", h.ExportSchedule)
		})
	})

	return r
}
