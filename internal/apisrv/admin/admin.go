// Package admin implements the admin HTTP handlers.
package admin

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/vhoanghac/sellerdash/internal/analytics"
)

// Server implements the admin routes.
type Server struct {
	analytics *analytics.Service
}

// New creates a new server with admin handlers.
func New(a *analytics.Service) *Server {
	return &Server{analytics: a}
}

// GetOverview serves GET /api/admin/overview. Query param: period.
func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.analytics.GetAdminOverview(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		slog.Default().Error("can't get admin overview",
			slog.String("err", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(overview); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}
