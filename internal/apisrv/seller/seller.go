// Package seller implements the seller-facing HTTP handlers: the live
// analytics dashboard and the report export.
package seller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/vhoanghac/sellerdash/internal/analytics"
	"github.com/vhoanghac/sellerdash/internal/auth"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
	"github.com/vhoanghac/sellerdash/internal/report"
)

const dateLayout = "2006-01-02"

// Server implements the seller routes.
type Server struct {
	analytics *analytics.Service
	reports   *report.Service
}

// New creates a new server with seller handlers.
func New(a *analytics.Service, r *report.Service) *Server {
	return &Server{
		analytics: a,
		reports:   r,
	}
}

// GetAnalytics serves GET /api/seller/analytics. Query params: period,
// startDate, endDate (both dates or the period token win is decided by the
// window resolver).
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	start := parseDate(q.Get("startDate"))
	end := parseDate(q.Get("endDate"))

	dashboard, err := s.analytics.GetSellerDashboard(ctx, userID, q.Get("period"), start, end)
	if err != nil {
		if errors.Is(err, gerr.ErrSellerNotFound) {
			http.Error(w, "seller not found", http.StatusNotFound)
			return
		}
		slog.Default().Error("can't get seller dashboard",
			slog.String("err", err.Error()),
			slog.Int("userId", userID),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	respondJSON(w, dashboard)
}

// ExportReport serves GET /api/seller/reports/export. Query params: period,
// startDate, endDate, format (xlsx|pdf, default xlsx) and sections, a
// comma-separated subset of orders,products,customers,revenue,statuses.
func (s *Server) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	req := entity.ReportRequest{
		UserID:    userID,
		Period:    q.Get("period"),
		StartDate: parseDate(q.Get("startDate")),
		EndDate:   parseDate(q.Get("endDate")),
		Format:    entity.ParseReportFormat(q.Get("format")),
		Sections:  parseSections(q.Get("sections")),
	}

	file, err := s.reports.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, gerr.ErrSellerNotFound) {
			http.Error(w, "seller not found", http.StatusNotFound)
			return
		}
		slog.Default().Error("can't generate report",
			slog.String("err", err.Error()),
			slog.Int("userId", userID),
		)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseSections(raw string) []entity.ReportSection {
	if raw == "" {
		return nil
	}
	var sections []entity.ReportSection
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sections = append(sections, entity.ReportSection(part))
	}
	return sections
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}
