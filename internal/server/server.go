// Package server exposes the permit search cascade over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/spyglass-realty/permit-search/internal/geocode"
	"github.com/spyglass-realty/permit-search/internal/permit"
)

// Searcher runs the adapter cascade for a resolved address.
type Searcher interface {
	Dispatch(ctx context.Context, address, city, county string) permit.SearchResult
}

// Server handles permit search requests.
type Server struct {
	resolver   geocode.Resolver
	dispatcher Searcher
}

// New creates a Server over the given resolver and dispatcher.
func New(resolver geocode.Resolver, dispatcher Searcher) *Server {
	return &Server{resolver: resolver, dispatcher: dispatcher}
}

// Router builds the HTTP handler with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/search_permits", s.handleSearch)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch validates the address, resolves city/county, and runs the
// cascade. Geocode failures degrade to default routing instead of failing
// the request.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
		return
	}

	ctx := r.Context()

	loc, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		zap.L().Warn("search: geocode failed, using default routing",
			zap.String("address", address),
			zap.Error(err),
		)
		loc = &geocode.Location{}
	}

	result := s.dispatcher.Dispatch(ctx, address, loc.City, loc.County)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}
