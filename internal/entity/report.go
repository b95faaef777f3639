package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFormat is the export container format.
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ParseReportFormat defaults to xlsx for unrecognized values.
func ParseReportFormat(raw string) ReportFormat {
	if ReportFormat(raw) == ReportFormatPDF {
		return ReportFormatPDF
	}
	return ReportFormatXLSX
}

// ReportSection names one sheet of the export workbook.
type ReportSection string

const (
	SectionOrders       ReportSection = "orders"
	SectionProducts     ReportSection = "products"
	SectionTopCustomers ReportSection = "customers"
	SectionDailyRevenue ReportSection = "revenue"
	SectionStatuses     ReportSection = "statuses"
)

// AllReportSections is the default section set for an export request.
var AllReportSections = []ReportSection{
	SectionOrders,
	SectionProducts,
	SectionTopCustomers,
	SectionDailyRevenue,
	SectionStatuses,
}

// ReportRequest describes one export call.
type ReportRequest struct {
	UserID    int             `valid:"required"`
	Period    string          `valid:"-"`
	StartDate *time.Time      `valid:"-"`
	EndDate   *time.Time      `valid:"-"`
	Format    ReportFormat    `valid:"in(xlsx|pdf)"`
	Sections  []ReportSection `valid:"-"`
}

// SellerReport holds the aggregates a report export is rendered from. Unlike
// the dashboard, Revenue sums DELIVERED orders only; GrossRevenue keeps the
// dashboard figure alongside for reconciliation.
type SellerReport struct {
	Seller        Seller
	Window        Window
	Revenue       decimal.Decimal
	GrossRevenue  decimal.Decimal
	OrderCount    int
	Delivered     int
	Cancelled     int
	AvgOrderValue decimal.Decimal

	Orders       []SellerOrder
	Products     []Product
	TopCustomers []TopCustomer
	DailyRevenue []RevenuePoint
	Statuses     []StatusCount
}

// ReportAudit is the append-only audit record written once per export
// attempt, success or failure. Never updated.
type ReportAudit struct {
	ID         int            `db:"id"`
	UUID       string         `db:"uuid"`
	UserID     int            `db:"user_id"`
	SellerID   int            `db:"seller_id"`
	Sections   string         `db:"sections"`
	Format     string         `db:"format"`
	PeriodFrom time.Time      `db:"period_from"`
	PeriodTo   time.Time      `db:"period_to"`
	Success    bool           `db:"success"`
	ErrorMsg   sql.NullString `db:"error_msg"`
	DurationMs int64          `db:"duration_ms"`
	CreatedAt  time.Time      `db:"created_at"`
}
