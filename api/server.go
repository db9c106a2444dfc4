/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a future frontend

ROUTE GROUPS:
  /api/sessions/*  Allocation sessions (availability, bundle, validation)
  /api/quotes/*    Quote approval, rejection, release, and history

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.AbandonSession)
				r.Get("/venues", h.GetVenues)
				r.Get("/staff", h.GetStaff)
				r.Post("/venue", h.SelectVenue)
				r.Post("/staff", h.AddStaff)
				r.Post("/rounds", h.BeginRound)
				r.Post("/rounds/rollback", h.RollbackRound)
				r.Post("/rounds/end", h.EndRound)
				r.Post("/line-items", h.AddLineItem)
				r.Post("/validate", h.ValidateSession)
				r.Post("/quote", h.BuildQuote)
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", h.ListQuotes)
			r.Post("/{id}/approve", h.ApproveQuote)
			r.Post("/{id}/reject", h.RejectQuote)
			r.Post("/{id}/release", h.ReleaseQuote)
		})
	})

	return r
}
