// Package handler implements the HTTP handlers for the when API.
// All handlers are methods on Server. Methods are split into
// endpoint-specific files (health.go, convert.go, timezones.go) but all
// share the same Server struct so they can access its dependencies.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/when/internal/convert"
	"github.com/pkordes/when/internal/middleware"
)

// maxBodySize caps request bodies. The API is GET-only, so anything with a
// meaningful body is suspect, but the handler chain still enforces a limit.
const maxBodySize = 1 << 20 // 1 MiB

// Converter defines the conversion operation the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the real clock or the zone tables.
type Converter interface {
	Convert(input string) (*convert.Outcome, error)
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	converter Converter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(converter Converter) *Server {
	return &Server{converter: converter}
}

// Routes assembles the chi router for the server with the full middleware
// stack. Middleware is applied in order: RequestID → RealIP → SlogLogger →
// Recoverer → CORS → body cap.
func Routes(s *Server, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(corsOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Get("/healthz", s.GetHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/convert", s.GetConvert)
		r.Get("/timezones", s.GetTimezones)
	})
	return r
}
