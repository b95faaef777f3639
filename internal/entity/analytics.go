package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is an inclusive calendar-date range used to scope an aggregation
// query, together with the immediately preceding comparison window of equal
// length.
type Window struct {
	From     time.Time
	To       time.Time
	PrevFrom time.Time
	PrevTo   time.Time
	// Token is the canonical period token the window was resolved from
	// ("7days", "30days", "90days", "year" or "custom").
	Token string
	Days  int
}

// MetricWithChange pairs a current-window metric with its value over the
// comparison window and the percentage delta between the two.
type MetricWithChange struct {
	Value     decimal.Decimal `json:"value"`
	Previous  decimal.Decimal `json:"previous"`
	ChangePct float64         `json:"changePct"`
}

// RevenuePoint is one day of the revenue series. Profit is an assumed-margin
// estimate, not a costing calculation.
type RevenuePoint struct {
	Date       time.Time       `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
	OrderCount int             `json:"orderCount"`
}

// CategoryRevenue aggregates order-item line totals by product category.
// Items with no product category land in the "Khác" bucket.
type CategoryRevenue struct {
	CategoryName string          `json:"categoryName"`
	Revenue      decimal.Decimal `json:"revenue"`
	Quantity     int             `json:"quantity"`
}

// CustomerSegment is a labeled customer count ("new" / "returning").
type CustomerSegment struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ProvinceCount counts distinct customers per shipping province.
type ProvinceCount struct {
	Province string `json:"province"`
	Count    int    `json:"count"`
}

// TopProduct ranks a product by in-window revenue. TrendPct compares the
// product's revenue against the comparison window.
type TopProduct struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Quantity    int             `json:"quantity"`
	TrendPct    float64         `json:"trendPct"`
}

// StockSeverity tags a low-stock product row.
type StockSeverity string

const (
	StockSeverityCritical StockSeverity = "critical"
	StockSeverityDanger   StockSeverity = "danger"
	StockSeverityWarning  StockSeverity = "warning"
)

// LowStockProduct flags a product whose on-hand quantity fell below a
// view-specific threshold.
type LowStockProduct struct {
	ProductID int           `json:"productId"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	Severity  StockSeverity `json:"severity"`
}

// TrafficPoint is one day of the synthetic traffic series. Visitors and
// views are derived from order counts; no real visitor tracking exists.
type TrafficPoint struct {
	Date       time.Time `json:"date"`
	Visitors   int       `json:"visitors"`
	PageViews  int       `json:"pageViews"`
	BounceRate float64   `json:"bounceRate"`
}

// TrafficSource counts orders per payment-method tag. A placeholder for
// real acquisition channels.
type TrafficSource struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// TopCustomer ranks a customer by total in-window spend.
type TopCustomer struct {
	CustomerID int             `json:"customerId"`
	Name       string          `json:"name"`
	OrderCount int             `json:"orderCount"`
	TotalSpend decimal.Decimal `json:"totalSpend"`
}

// StatusCount is one bucket of the order-status histogram.
type StatusCount struct {
	Status OrderStatusName `json:"status"`
	Count  int             `json:"count"`
}

// DashboardOverview is the headline block of the seller dashboard. Revenue
// here is gross: every order in the window counts, whatever its status.
type DashboardOverview struct {
	Revenue        MetricWithChange `json:"revenue"`
	Orders         MetricWithChange `json:"orders"`
	AvgOrderValue  MetricWithChange `json:"avgOrderValue"`
	ConversionRate MetricWithChange `json:"conversionRate"`
}

// SellerDashboard is the full dashboard response for the live UI.
type SellerDashboard struct {
	SellerID        int    `json:"sellerId"`
	ShopName        string `json:"shopName"`
	Period          string `json:"period"`
	From            string `json:"from"`
	To              string `json:"to"`
	UniqueCustomers int    `json:"uniqueCustomers"`

	Overview         DashboardOverview `json:"overview"`
	RevenueSeries    []RevenuePoint    `json:"revenueSeries"`
	CategoryRevenue  []CategoryRevenue `json:"categoryRevenue"`
	CustomerSegments []CustomerSegment `json:"customerSegments"`
	Geography        []ProvinceCount   `json:"geography"`
	TopProducts      []TopProduct      `json:"topProducts"`
	LowStock         []LowStockProduct `json:"lowStock"`
	StockAlerts      []LowStockProduct `json:"stockAlerts"`
	TrafficSeries    []TrafficPoint    `json:"trafficSeries"`
	TrafficSources   []TrafficSource   `json:"trafficSources"`
}

// AdminOverview is the platform-wide windowed overview.
type AdminOverview struct {
	Period        string           `json:"period"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	Revenue       MetricWithChange `json:"revenue"`
	Orders        MetricWithChange `json:"orders"`
	ActiveSellers int              `json:"activeSellers"`
	TopSellers    []SellerRevenue  `json:"topSellers"`
}

// SellerRevenue ranks a seller by in-window revenue.
type SellerRevenue struct {
	SellerID int             `json:"sellerId"`
	ShopName string          `json:"shopName"`
	Orders   int             `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}
