package report

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vhoanghac/sellerdash/internal/analytics"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
	"github.com/xuri/excelize/v2"
)

// fakeRepo is an in-memory dependency.Repository for exercising the export
// pipeline without a database.
type fakeRepo struct {
	seller    *entity.Seller
	sellerErr error
	orders    []entity.SellerOrder
	ordersErr error
	products  []entity.Product
	audits    []entity.ReportAudit
	auditErr  error
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
	return f.orders, f.ordersErr
}

func (f *fakeRepo) GetAllOrders(ctx context.Context, from, to time.Time) ([]entity.SellerOrder, error) {
	return f.orders, f.ordersErr
}

func (f *fakeRepo) GetLowStock(ctx context.Context, sellerID, threshold, limit int) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeRepo) GetTopSellingAllTime(ctx context.Context, sellerID, limit int) ([]entity.Product, error) {
	return nil, nil
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
	if f.auditErr != nil {
		return 0, f.auditErr
	}
	f.audits = append(f.audits, *audit)
	return len(f.audits), nil
}

func testRepo() *fakeRepo {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []entity.SellerOrder{
		{
			Order: entity.Order{
				ID:            1,
				UUID:          "ord-1",
				CustomerID:    sql.NullInt64{Int64: 7, Valid: true},
				SellerID:      3,
				FinalTotal:    decimal.NewFromInt(500),
				Status:        entity.OrderStatusDelivered,
				PaymentMethod: "COD",
				CreatedAt:     now.AddDate(0, 0, -2),
			},
			CustomerName: sql.NullString{String: "An", Valid: true},
		},
		{
			Order: entity.Order{
				ID:            2,
				UUID:          "ord-2",
				CustomerID:    sql.NullInt64{Int64: 8, Valid: true},
				SellerID:      3,
				FinalTotal:    decimal.NewFromInt(200),
				Status:        entity.OrderStatusPending,
				PaymentMethod: "BANK",
				CreatedAt:     now.AddDate(0, 0, -1),
			},
		},
	}
	return &fakeRepo{
		seller:   &entity.Seller{ID: 3, UserID: 11, ShopName: "Shop An"},
		orders:   orders,
		products: []entity.Product{{ID: 1, SellerID: 3, Name: "Áo thun", Price: decimal.NewFromInt(150), Quantity: 9, TotalSold: 40}},
		now:      now,
	}
}

func TestGenerateXLSX(t *testing.T) {
	repo := testRepo()
	svc := New(repo, Config{Timezone: "UTC"})

	file, err := svc.Generate(context.Background(), entity.ReportRequest{
		UserID: 11,
		Period: "7days",
		Format: entity.ReportFormatXLSX,
	})
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Regexp(t, regexp.MustCompile(`^bao-cao-7days-\d{4}-\d{2}-\d{2}\.xlsx$`), file.Filename)
	assert.Equal(t, "bao-cao-7days-2024-03-15.xlsx", file.Filename)
	assert.Equal(t, contentTypeXLSX, file.ContentType)
	require.NotEmpty(t, file.Data)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.GetSheetList()
	assert.Contains(t, sheets, sheetSummary)
	assert.Contains(t, sheets, sheetOrders)
	assert.Contains(t, sheets, sheetProducts)

	// Exactly one audit row, marked successful.
	require.Len(t, repo.audits, 1)
	audit := repo.audits[0]
	assert.True(t, audit.Success)
	assert.Equal(t, 11, audit.UserID)
	assert.Equal(t, 3, audit.SellerID)
	assert.Equal(t, "xlsx", audit.Format)
	assert.False(t, audit.ErrorMsg.Valid)
	assert.Equal(t, "orders,products,customers,revenue,statuses", audit.Sections)
}

func TestGeneratePDF(t *testing.T) {
	repo := testRepo()
	svc := New(repo, Config{Timezone: "UTC"})

	file, err := svc.Generate(context.Background(), entity.ReportRequest{
		UserID: 11,
		Period: "30days",
		Format: entity.ReportFormatPDF,
	})
	require.NoError(t, err)

	assert.Equal(t, "bao-cao-30days-2024-03-15.pdf", file.Filename)
	assert.Equal(t, contentTypePDF, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestGenerateUsesDeliveredRevenueOnly(t *testing.T) {
	repo := testRepo()
	svc := New(repo, Config{Timezone: "UTC"})

	seller, err := repo.GetSellerByUserID(context.Background(), 11)
	require.NoError(t, err)

	w := analytics.ResolvePeriod("7days", nil, nil, repo.now, time.UTC)
	rep, err := svc.build(context.Background(), seller, w)
	require.NoError(t, err)

	assert.True(t, rep.Revenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, rep.GrossRevenue.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 2, rep.OrderCount)
	assert.Equal(t, 1, rep.Delivered)
}

func TestGenerateAuditOnFailure(t *testing.T) {
	repo := testRepo()
	repo.ordersErr = errors.New("connection reset")
	svc := New(repo, Config{Timezone: "UTC"})

	_, err := svc.Generate(context.Background(), entity.ReportRequest{
		UserID: 11,
		Period: "7days",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gerr.ErrReportGeneration)

	// The failed attempt still leaves exactly one audit row.
	require.Len(t, repo.audits, 1)
	audit := repo.audits[0]
	assert.False(t, audit.Success)
	assert.True(t, audit.ErrorMsg.Valid)
	assert.Contains(t, audit.ErrorMsg.String, "connection reset")
}

func TestGenerateSellerNotFound(t *testing.T) {
	repo := testRepo()
	repo.seller = nil
	repo.sellerErr = gerr.ErrSellerNotFound
	svc := New(repo, Config{Timezone: "UTC"})

	_, err := svc.Generate(context.Background(), entity.ReportRequest{
		UserID: 99,
		Period: "7days",
	})
	require.ErrorIs(t, err, gerr.ErrSellerNotFound)

	// Audited with no seller id to attach.
	require.Len(t, repo.audits, 1)
	assert.Equal(t, 0, repo.audits[0].SellerID)
	assert.False(t, repo.audits[0].Success)
}

func TestGenerateSectionSubset(t *testing.T) {
	repo := testRepo()
	svc := New(repo, Config{Timezone: "UTC"})

	file, err := svc.Generate(context.Background(), entity.ReportRequest{
		UserID:   11,
		Period:   "7days",
		Sections: []entity.ReportSection{entity.SectionOrders},
	})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.GetSheetList()
	assert.Contains(t, sheets, sheetSummary)
	assert.Contains(t, sheets, sheetOrders)
	assert.NotContains(t, sheets, sheetProducts)
	assert.Equal(t, "orders", repo.audits[0].Sections)
}
