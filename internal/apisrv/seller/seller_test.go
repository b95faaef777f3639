package seller

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vhoanghac/sellerdash/internal/analytics"
	"github.com/vhoanghac/sellerdash/internal/auth"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
	"github.com/vhoanghac/sellerdash/internal/report"
)

type fakeRepo struct {
	seller    *entity.Seller
	sellerErr error
	orders    []entity.SellerOrder
	audits    int
	now       time.Time
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
	return f.orders, nil
}

func (f *fakeRepo) GetAllOrders(ctx context.Context, from, to time.Time) ([]entity.SellerOrder, error) {
	return f.orders, nil
}

func (f *fakeRepo) GetLowStock(ctx context.Context, sellerID, threshold, limit int) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeRepo) GetTopSellingAllTime(ctx context.Context, sellerID, limit int) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeRepo) GetSellerProducts(ctx context.Context, sellerID int) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeRepo) GetSellerByUserID(ctx context.Context, userID int) (*entity.Seller, error) {
	return f.seller, f.sellerErr
}

func (f *fakeRepo) GetSellerByID(ctx context.Context, sellerID int) (*entity.Seller, error) {
	return f.seller, f.sellerErr
}

func (f *fakeRepo) ListSellers(ctx context.Context) ([]entity.Seller, error) {
	return nil, nil
}

func (f *fakeRepo) AddReportAudit(ctx context.Context, audit *entity.ReportAudit) (int, error) {
	f.audits++
	return f.audits, nil
}

func testServer(t *testing.T, repo dependency.Repository) (http.Handler, string) {
	t.Helper()
	a, err := auth.New(auth.Config{JWTSecret: "test-secret"})
	require.NoError(t, err)
	token, err := a.NewToken(11, auth.RoleSeller)
	require.NoError(t, err)

	srv := New(
		analytics.New(repo, analytics.Config{Timezone: "UTC"}),
		report.New(repo, report.Config{Timezone: "UTC"}),
	)

	r := chi.NewRouter()
	r.Route("/api/seller", func(r chi.Router) {
		r.Use(a.Verifier())
		r.Use(a.Authenticator(auth.RoleSeller))
		r.Get("/analytics", srv.GetAnalytics)
		r.Get("/reports/export", srv.ExportReport)
	})
	return r, token
}

func testRepo() *fakeRepo {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return &fakeRepo{
		seller: &entity.Seller{ID: 3, UserID: 11, ShopName: "Shop An"},
		orders: []entity.SellerOrder{{
			Order: entity.Order{
				ID:         1,
				UUID:       "ord-1",
				CustomerID: sql.NullInt64{Int64: 7, Valid: true},
				SellerID:   3,
				FinalTotal: decimal.NewFromInt(500),
				Status:     entity.OrderStatusDelivered,
				CreatedAt:  now.AddDate(0, 0, -1),
			},
		}},
		now: now,
	}
}

func TestGetAnalytics(t *testing.T) {
	handler, token := testServer(t, testRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/seller/analytics?period=7days", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var d entity.SellerDashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))
	assert.Equal(t, "Shop An", d.ShopName)
	assert.Equal(t, "7days", d.Period)
	assert.Len(t, d.RevenueSeries, 7)
}

func TestGetAnalyticsSellerNotFound(t *testing.T) {
	repo := testRepo()
	repo.seller = nil
	repo.sellerErr = gerr.ErrSellerNotFound
	handler, token := testServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/seller/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAnalyticsUnauthorized(t *testing.T) {
	handler, _ := testServer(t, testRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/seller/analytics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExportReport(t *testing.T) {
	repo := testRepo()
	handler, token := testServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/seller/reports/export?period=7days&format=xlsx&sections=orders,revenue", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rr.Header().Get("Content-Type"),
	)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `attachment; filename="bao-cao-7days-2024-03-15.xlsx"`)
	assert.NotEmpty(t, rr.Body.Bytes())
	assert.Equal(t, 1, repo.audits)
}

func TestParseSections(t *testing.T) {
	assert.Nil(t, parseSections(""))
	assert.Equal(t,
		[]entity.ReportSection{entity.SectionOrders, entity.SectionDailyRevenue},
		parseSections("orders, revenue"),
	)
}
