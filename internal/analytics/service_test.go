package analytics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
)

type fakeRepo struct {
	seller     *entity.Seller
	sellerErr  error
	current    []entity.SellerOrder
	previous   []entity.SellerOrder
	lowStock   []entity.Product
	products   []entity.Product
	bestSeller []entity.Product
	now        time.Time
}

func (f *fakeRepo) Orders() dependency.Orders           { return f }
func (f *fakeRepo) Products() dependency.Products       { return f }
func (f *fakeRepo) Sellers() dependency.Sellers         { return f }
func (f *fakeRepo) ReportAudit() dependency.ReportAudit { return f }
func (f *fakeRepo) Now() time.Time                      { return f.now }
func (f *fakeRepo) Ping(ctx context.Context) error      { return nil }
func (f *fakeRepo) Close()                              {}
func (f *fakeRepo) DB() dependency.DB                   { return nil }

func (f *fakeRepo) GetSellerOrders(ctx context.Context, sellerID int, from, to time.Time) ([]entity.SellerOrder, error) {
	// The comparison window ends strictly before the current one starts.
	if to.Before(f.now.AddDate(0, 0, -1)) {
		return f.previous, nil
	}
	return f.current, nil
}

func (f *fakeRepo) GetAllOrders(ctx context.Context, from, to time.Time) ([]entity.SellerOrder, error) {
	return f.GetSellerOrders(ctx, 0, from, to)
}

func (f *fakeRepo) GetLowStock(ctx context.Context, sellerID, threshold, limit int) ([]entity.Product, error) {
	return f.lowStock, nil
}

func (f *fakeRepo) GetTopSellingAllTime(ctx context.Context, sellerID, limit int) ([]entity.Product, error) {
	return f.bestSeller, nil
}

func (f *fakeRepo) GetSellerProducts(ctx context.Context, sellerID int) ([]entity.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) GetSellerByUserID(ctx context.Context, userID int) (*entity.Seller, error) {
	return f.seller, f.sellerErr
}

func (f *fakeRepo) GetSellerByID(ctx context.Context, sellerID int) (*entity.Seller, error) {
	return f.seller, f.sellerErr
}

func (f *fakeRepo) ListSellers(ctx context.Context) ([]entity.Seller, error) {
	if f.seller == nil {
		return nil, nil
	}
	return []entity.Seller{*f.seller}, nil
}

func (f *fakeRepo) AddReportAudit(ctx context.Context, audit *entity.ReportAudit) (int, error) {
	return 0, nil
}

func dashOrder(id int64, sellerID int, total float64, created time.Time) entity.SellerOrder {
	return entity.SellerOrder{
		Order: entity.Order{
			CustomerID: sql.NullInt64{Int64: id, Valid: true},
			SellerID:   sellerID,
			FinalTotal: decimal.NewFromFloat(total),
			Status:     entity.OrderStatusDelivered,
			CreatedAt:  created,
		},
	}
}

func TestGetSellerDashboard(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		seller: &entity.Seller{ID: 3, UserID: 11, ShopName: "Shop An"},
		current: []entity.SellerOrder{
			dashOrder(1, 3, 300, now.AddDate(0, 0, -1)),
			dashOrder(2, 3, 100, now.AddDate(0, 0, -2)),
		},
		previous: []entity.SellerOrder{
			dashOrder(1, 3, 200, now.AddDate(0, 0, -10)),
		},
		lowStock: []entity.Product{{ID: 5, Name: "Áo", Quantity: 3}},
		products: []entity.Product{{ID: 5, Name: "Áo", Quantity: 3}, {ID: 6, Name: "Quần", Quantity: 40}},
		now:      now,
	}
	svc := New(repo, Config{Timezone: "UTC"})

	d, err := svc.GetSellerDashboard(context.Background(), 11, "7days", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, d.SellerID)
	assert.Equal(t, "Shop An", d.ShopName)
	assert.Equal(t, "7days", d.Period)
	assert.Equal(t, 2, d.UniqueCustomers)

	assert.True(t, d.Overview.Revenue.Value.Equal(decimal.NewFromInt(400)))
	assert.True(t, d.Overview.Revenue.Previous.Equal(decimal.NewFromInt(200)))
	assert.InDelta(t, 100.0, d.Overview.Revenue.ChangePct, 0.0001)
	assert.InDelta(t, 100.0, d.Overview.Orders.ChangePct, 0.0001)

	assert.Len(t, d.RevenueSeries, 7)
	assert.Len(t, d.TrafficSeries, 7)
	require.Len(t, d.LowStock, 1)
	assert.Len(t, d.StockAlerts, 2)
}

func TestGetSellerDashboardSellerNotFound(t *testing.T) {
	repo := &fakeRepo{sellerErr: gerr.ErrSellerNotFound, now: time.Now()}
	svc := New(repo, Config{Timezone: "UTC"})

	_, err := svc.GetSellerDashboard(context.Background(), 42, "7days", nil, nil)
	assert.ErrorIs(t, err, gerr.ErrSellerNotFound)
}

func TestGetSellerDashboardBestSellerFallback(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		seller:     &entity.Seller{ID: 3, UserID: 11, ShopName: "Shop An"},
		bestSeller: []entity.Product{{ID: 9, Name: "Nón", TotalSold: 25}},
		now:        now,
	}
	svc := New(repo, Config{Timezone: "UTC"})

	d, err := svc.GetSellerDashboard(context.Background(), 11, "7days", nil, nil)
	require.NoError(t, err)

	// No in-window sales, so all-time best sellers fill the list.
	require.Len(t, d.TopProducts, 1)
	assert.Equal(t, "Nón", d.TopProducts[0].ProductName)
	assert.True(t, d.TopProducts[0].Revenue.IsZero())
	assert.Equal(t, 25, d.TopProducts[0].Quantity)
}

func TestGetAdminOverview(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		seller: &entity.Seller{ID: 3, UserID: 11, ShopName: "Shop An"},
		current: []entity.SellerOrder{
			dashOrder(1, 3, 300, now.AddDate(0, 0, -1)),
			dashOrder(2, 4, 100, now.AddDate(0, 0, -2)),
		},
		now: now,
	}
	svc := New(repo, Config{Timezone: "UTC"})

	o, err := svc.GetAdminOverview(context.Background(), "7days")
	require.NoError(t, err)

	assert.True(t, o.Revenue.Value.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 2, o.ActiveSellers)
	require.Len(t, o.TopSellers, 2)
	assert.Equal(t, 3, o.TopSellers[0].SellerID)
	assert.Equal(t, "Shop An", o.TopSellers[0].ShopName)
	assert.True(t, o.TopSellers[0].Revenue.Equal(decimal.NewFromInt(300)))
}

func TestGetAdminOverviewEmptyPlatform(t *testing.T) {
	repo := &fakeRepo{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := New(repo, Config{Timezone: "UTC"})

	o, err := svc.GetAdminOverview(context.Background(), "30days")
	require.NoError(t, err)

	assert.True(t, o.Revenue.Value.IsZero())
	assert.InDelta(t, 0.0, o.Revenue.ChangePct, 0.0001)
	assert.Equal(t, 0, o.ActiveSellers)
	assert.Empty(t, o.TopSellers)
}
