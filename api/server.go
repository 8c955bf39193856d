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
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/projections/*    Projection CRUD, recompute, results
  /api/simulate         Stateless engine runs
  /api/scenarios/*      Demo scenarios
  /api/admin/*          Batch operations

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Projection routes
		r.Route("/projections", func(r chi.Router) {
			r.Get("/", h.ListProjections)
			r.Post("/", h.CreateProjection)
			r.Get("/{id}", h.GetProjection)
			r.Put("/{id}", h.UpdateProjection)
			r.Delete("/{id}", h.DeleteProjection)
			r.Post("/{id}/recompute", h.RecomputeProjection)
			r.Get("/{id}/records", h.GetRecords)
			r.Get("/{id}/summary", h.GetSummary)
		})

		// Stateless simulation
		r.Post("/simulate", h.Simulate)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/recompute-all", h.RecomputeAll)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
