/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the map frontend

ROUTE GROUPS:
  /api/areas/*     Service areas and event registration
  /api/events/*    Photo attachments
  /api/teams/*     Field crews
  /api/config      Per-lot production rates
  /api/holidays    Holiday listing
  /api/calendar/*  Business-day queries
  /api/admin/*     Admin operations

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Area routes
		r.Route("/areas", func(r chi.Router) {
			r.Get("/", h.ListAreas)
			r.Post("/", h.CreateArea)
			r.Get("/search", h.SearchAreas)
			r.Post("/register-daily", h.RegisterDaily)
			r.Get("/{id}", h.GetArea)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Patch("/{id}/polygon", h.UpdatePolygon)
			r.Patch("/{id}/position", h.UpdatePosition)
			r.Patch("/{id}/manual-forecast", h.SetManualForecast)
			r.Post("/{id}/register", h.RegisterEvent)
			r.Get("/{id}/history", h.ListAreaHistory)
		})

		// Event photo routes
		r.Route("/events", func(r chi.Router) {
			r.Post("/{id}/photos", h.AddEventPhoto)
			r.Get("/{id}/photos", h.ListEventPhotos)
		})

		// Team routes
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.Patch("/{id}/assign", h.AssignTeam)
		})

		// Config routes
		r.Get("/config", h.GetConfig)
		r.Patch("/config", h.UpdateConfig)

		// Holiday and calendar routes
		r.Get("/holidays", h.ListHolidays)
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/business-day", h.BusinessDay)
			r.Get("/add-business-days", h.AddBusinessDays)
			r.Get("/business-days-between", h.BusinessDaysBetween)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/recalculate", h.RecalculateAll)
		})
	})

	return r
}
