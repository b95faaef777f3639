// Package report builds downloadable seller reports (xlsx and pdf) over the
// same order snapshots the dashboard aggregates, and records every export
// attempt in the report audit table.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/analytics"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"

	topCustomerLimit = 5
)

type Config struct {
	Timezone         string  `mapstructure:"timezone"`
	ProfitMarginRate float64 `mapstructure:"profit_margin_rate"`
}

// Service renders seller report exports. Rendering is all-or-nothing: a
// failed export produces no bytes, only an audit row.
type Service struct {
	repo   dependency.Repository
	loc    *time.Location
	margin decimal.Decimal
}

func New(repo dependency.Repository, cfg Config) *Service {
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Ho_Chi_Minh"
	}
	if cfg.ProfitMarginRate <= 0 {
		cfg.ProfitMarginRate = 0.22
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Default().Warn("unknown timezone, falling back to UTC",
			slog.String("timezone", cfg.Timezone),
		)
		loc = time.UTC
	}
	return &Service{
		repo:   repo,
		loc:    loc,
		margin: decimal.NewFromFloat(cfg.ProfitMarginRate),
	}
}

// ExportFile is a fully rendered report ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Generate renders one report export and writes exactly one audit row for
// the attempt, whether it succeeded or not. The audit write itself is best
// effort and never masks the export outcome.
func (s *Service) Generate(ctx context.Context, req entity.ReportRequest) (*ExportFile, error) {
	started := time.Now()

	if req.Format == "" {
		req.Format = entity.ReportFormatXLSX
	}
	if len(req.Sections) == 0 {
		req.Sections = entity.AllReportSections
	}

	w := analytics.ResolvePeriod(req.Period, req.StartDate, req.EndDate, s.repo.Now(), s.loc)

	file, sellerID, err := s.generateSafe(ctx, req, w)

	audit := &entity.ReportAudit{
		UserID:     req.UserID,
		SellerID:   sellerID,
		Sections:   joinSections(req.Sections),
		Format:     string(req.Format),
		PeriodFrom: w.From,
		PeriodTo:   w.To,
		Success:    err == nil,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		audit.ErrorMsg = sql.NullString{String: err.Error(), Valid: true}
	}
	if _, auditErr := s.repo.ReportAudit().AddReportAudit(ctx, audit); auditErr != nil {
		slog.Default().Error("can't write report audit",
			slog.String("err", auditErr.Error()),
			slog.Int("userId", req.UserID),
		)
	}

	if err != nil {
		return nil, err
	}
	return file, nil
}

// generateSafe converts renderer panics into errors so the audit row is
// still written for the attempt.
func (s *Service) generateSafe(ctx context.Context, req entity.ReportRequest, w entity.Window) (file *ExportFile, sellerID int, err error) {
	defer func() {
		if r := recover(); r != nil {
			file = nil
			err = fmt.Errorf("%w: panic: %v", gerr.ErrReportGeneration, r)
		}
	}()
	return s.generate(ctx, req, w)
}

func (s *Service) generate(ctx context.Context, req entity.ReportRequest, w entity.Window) (*ExportFile, int, error) {
	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, 0, fmt.Errorf("%w: validate request: %v", gerr.ErrReportGeneration, err)
	}

	seller, err := s.repo.Sellers().GetSellerByUserID(ctx, req.UserID)
	if err != nil {
		return nil, 0, err
	}

	rep, err := s.build(ctx, seller, w)
	if err != nil {
		return nil, seller.ID, fmt.Errorf("%w: %v", gerr.ErrReportGeneration, err)
	}

	var data []byte
	var contentType string
	switch req.Format {
	case entity.ReportFormatPDF:
		data, err = renderPDF(rep, req.Sections)
		contentType = contentTypePDF
	default:
		data, err = renderXLSX(rep, req.Sections)
		contentType = contentTypeXLSX
	}
	if err != nil {
		return nil, seller.ID, fmt.Errorf("%w: render %s: %v", gerr.ErrReportGeneration, req.Format, err)
	}

	return &ExportFile{
		Filename:    s.filename(w.Token, req.Format),
		ContentType: contentType,
		Data:        data,
	}, seller.ID, nil
}

// build assembles the report aggregates. Revenue counts DELIVERED orders
// only; GrossRevenue keeps the dashboard figure for reconciliation.
func (s *Service) build(ctx context.Context, seller *entity.Seller, w entity.Window) (*entity.SellerReport, error) {
	orders, err := s.repo.Orders().GetSellerOrders(ctx, seller.ID, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	products, err := s.repo.Products().GetSellerProducts(ctx, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	var delivered, cancelled int
	for _, o := range orders {
		switch o.Status {
		case entity.OrderStatusDelivered:
			delivered++
		case entity.OrderStatusCancelled:
			cancelled++
		}
	}

	revenue := analytics.DeliveredRevenue(orders)

	return &entity.SellerReport{
		Seller:        *seller,
		Window:        w,
		Revenue:       revenue,
		GrossRevenue:  analytics.GrossRevenue(orders),
		OrderCount:    len(orders),
		Delivered:     delivered,
		Cancelled:     cancelled,
		AvgOrderValue: analytics.AverageOrderValue(revenue, delivered),
		Orders:        orders,
		Products:      products,
		TopCustomers:  analytics.TopCustomers(orders, topCustomerLimit),
		DailyRevenue:  analytics.RevenueSeries(orders, w, s.margin),
		Statuses:      analytics.StatusHistogram(orders),
	}, nil
}

func (s *Service) filename(period string, format entity.ReportFormat) string {
	return fmt.Sprintf("bao-cao-%s-%s.%s",
		period, s.repo.Now().In(s.loc).Format("2006-01-02"), format)
}

func joinSections(sections []entity.ReportSection) string {
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		parts = append(parts, string(sec))
	}
	return strings.Join(parts, ",")
}
