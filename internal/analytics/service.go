package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Config replaces the settings singletons the rest of the platform uses:
// every knob the aggregation relies on is passed in explicitly.
type Config struct {
	Timezone          string  `mapstructure:"timezone"`
	ProfitMarginRate  float64 `mapstructure:"profit_margin_rate"`
	LowStockThreshold int     `mapstructure:"low_stock_threshold"`
	StockAlertLimit   int     `mapstructure:"stock_alert_limit"`
	TopLimit          int     `mapstructure:"top_limit"`
}

func (c Config) withDefaults() Config {
	if c.Timezone == "" {
		c.Timezone = "Asia/Ho_Chi_Minh"
	}
	if c.ProfitMarginRate <= 0 {
		// Assumed margin, not a costing calculation.
		c.ProfitMarginRate = 0.22
	}
	if c.LowStockThreshold <= 0 {
		c.LowStockThreshold = 20
	}
	if c.StockAlertLimit <= 0 {
		c.StockAlertLimit = 5
	}
	if c.TopLimit <= 0 {
		c.TopLimit = 5
	}
	return c
}

// Service assembles seller dashboards and the admin overview from
// persisted orders. All computation happens in memory over per-window
// snapshots; the service performs no writes.
type Service struct {
	repo   dependency.Repository
	cfg    Config
	loc    *time.Location
	margin decimal.Decimal
}

func New(repo dependency.Repository, cfg Config) *Service {
	cfg = cfg.withDefaults()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Default().Warn("unknown timezone, falling back to UTC",
			slog.String("timezone", cfg.Timezone),
		)
		loc = time.UTC
	}
	return &Service{
		repo:   repo,
		cfg:    cfg,
		loc:    loc,
		margin: decimal.NewFromFloat(cfg.ProfitMarginRate),
	}
}

// Window resolves a period request in the service's timezone.
func (s *Service) Window(token string, start, end *time.Time) entity.Window {
	return ResolvePeriod(token, start, end, s.repo.Now(), s.loc)
}

// fetchWindows reads the current and comparison snapshots for a seller.
func (s *Service) fetchWindows(ctx context.Context, sellerID int, w entity.Window) (current, previous []entity.SellerOrder, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.repo.Orders().GetSellerOrders(gctx, sellerID, w.From, w.To)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.repo.Orders().GetSellerOrders(gctx, sellerID, w.PrevFrom, w.PrevTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}

// GetSellerDashboard builds the live dashboard for the seller owned by
// userID. A user without a seller profile aborts with
// gerr.ErrSellerNotFound before any aggregation runs.
func (s *Service) GetSellerDashboard(ctx context.Context, userID int, period string, start, end *time.Time) (*entity.SellerDashboard, error) {
	seller, err := s.repo.Sellers().GetSellerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	w := s.Window(period, start, end)
	current, previous, err := s.fetchWindows(ctx, seller.ID, w)
	if err != nil {
		return nil, fmt.Errorf("fetch order windows: %w", err)
	}

	lowStock, err := s.repo.Products().GetLowStock(ctx, seller.ID, s.cfg.LowStockThreshold, 50)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	allProducts, err := s.repo.Products().GetSellerProducts(ctx, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("seller products: %w", err)
	}

	top := TopProducts(current, previous, s.cfg.TopLimit)
	if len(top) == 0 {
		best, err := s.repo.Products().GetTopSellingAllTime(ctx, seller.ID, s.cfg.TopLimit)
		if err != nil {
			return nil, fmt.Errorf("best sellers: %w", err)
		}
		top = BestSellerFallback(best, s.cfg.TopLimit)
	}

	return &entity.SellerDashboard{
		SellerID:        seller.ID,
		ShopName:        seller.ShopName,
		Period:          w.Token,
		From:            w.From.Format("2006-01-02"),
		To:              w.To.Format("2006-01-02"),
		UniqueCustomers: UniqueCustomers(current),

		Overview:         s.overview(current, previous),
		RevenueSeries:    RevenueSeries(current, w, s.margin),
		CategoryRevenue:  CategoryRevenue(current),
		CustomerSegments: CustomerSegments(current),
		Geography:        Geography(current, s.cfg.TopLimit),
		TopProducts:      top,
		LowStock:         LowStock(lowStock),
		StockAlerts:      StockAlerts(allProducts, s.cfg.StockAlertLimit),
		TrafficSeries:    TrafficSeries(current, w),
		TrafficSources:   TrafficSources(current),
	}, nil
}

func (s *Service) overview(current, previous []entity.SellerOrder) entity.DashboardOverview {
	curRev, prevRev := GrossRevenue(current), GrossRevenue(previous)
	curOrders, prevOrders := len(current), len(previous)
	curAOV := AverageOrderValue(curRev, curOrders)
	prevAOV := AverageOrderValue(prevRev, prevOrders)
	curConv := ConversionRate(curOrders, UniqueCustomers(current))
	prevConv := ConversionRate(prevOrders, UniqueCustomers(previous))

	return entity.DashboardOverview{
		Revenue: entity.MetricWithChange{
			Value:     curRev,
			Previous:  prevRev,
			ChangePct: PercentChange(curRev, prevRev),
		},
		Orders: entity.MetricWithChange{
			Value:     decimal.NewFromInt(int64(curOrders)),
			Previous:  decimal.NewFromInt(int64(prevOrders)),
			ChangePct: PercentChangeInt(curOrders, prevOrders),
		},
		AvgOrderValue: entity.MetricWithChange{
			Value:     curAOV,
			Previous:  prevAOV,
			ChangePct: PercentChange(curAOV, prevAOV),
		},
		ConversionRate: entity.MetricWithChange{
			Value:     curConv,
			Previous:  prevConv,
			ChangePct: PercentChange(curConv, prevConv),
		},
	}
}

// GetAdminOverview computes the platform-wide windowed overview.
func (s *Service) GetAdminOverview(ctx context.Context, period string) (*entity.AdminOverview, error) {
	w := s.Window(period, nil, nil)

	var current, previous []entity.SellerOrder
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.repo.Orders().GetAllOrders(gctx, w.From, w.To)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.repo.Orders().GetAllOrders(gctx, w.PrevFrom, w.PrevTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch order windows: %w", err)
	}

	sellers, err := s.repo.Sellers().ListSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	shopNames := make(map[int]string, len(sellers))
	for _, sl := range sellers {
		shopNames[sl.ID] = sl.ShopName
	}

	curRev, prevRev := GrossRevenue(current), GrossRevenue(previous)

	return &entity.AdminOverview{
		Period: w.Token,
		From:   w.From.Format("2006-01-02"),
		To:     w.To.Format("2006-01-02"),
		Revenue: entity.MetricWithChange{
			Value:     curRev,
			Previous:  prevRev,
			ChangePct: PercentChange(curRev, prevRev),
		},
		Orders: entity.MetricWithChange{
			Value:     decimal.NewFromInt(int64(len(current))),
			Previous:  decimal.NewFromInt(int64(len(previous))),
			ChangePct: PercentChangeInt(len(current), len(previous)),
		},
		ActiveSellers: activeSellers(current),
		TopSellers:    topSellers(current, shopNames, s.cfg.TopLimit),
	}, nil
}

func sortSellerRevenue(rows []entity.SellerRevenue) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].SellerID < rows[j].SellerID
	})
}

func activeSellers(orders []entity.SellerOrder) int {
	seen := make(map[int]struct{})
	for _, o := range orders {
		seen[o.SellerID] = struct{}{}
	}
	return len(seen)
}

func topSellers(orders []entity.SellerOrder, shopNames map[int]string, limit int) []entity.SellerRevenue {
	type bucket struct {
		revenue decimal.Decimal
		orders  int
	}
	bySeller := make(map[int]bucket)
	for _, o := range orders {
		b := bySeller[o.SellerID]
		b.revenue = b.revenue.Add(o.FinalTotal)
		b.orders++
		bySeller[o.SellerID] = b
	}

	result := make([]entity.SellerRevenue, 0, len(bySeller))
	for id, b := range bySeller {
		result = append(result, entity.SellerRevenue{
			SellerID: id,
			ShopName: shopNames[id],
			Orders:   b.orders,
			Revenue:  b.revenue,
		})
	}
	sortSellerRevenue(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
