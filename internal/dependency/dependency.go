package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

type (
	// Orders exposes the seller-scoped read side of the order subsystem.
	// The aggregation core never writes orders.
	Orders interface {
		// GetSellerOrders returns the immutable snapshot of a seller's
		// orders created in [from, to], with nested items (including the
		// product's category) and the customer's default province.
		GetSellerOrders(ctx context.Context, sellerID int, from, to time.Time) ([]entity.SellerOrder, error)
		// GetAllOrders returns the platform-wide snapshot for the admin
		// overview, same shape as GetSellerOrders.
		GetAllOrders(ctx context.Context, from, to time.Time) ([]entity.SellerOrder, error)
	}

	Products interface {
		// GetLowStock returns the seller's products with quantity below
		// threshold, lowest first, capped at limit.
		GetLowStock(ctx context.Context, sellerID, threshold, limit int) ([]entity.Product, error)
		// GetTopSellingAllTime ranks the seller's products by the all-time
		// total_sold counter. Used as the top-products fallback when the
		// window has no sales.
		GetTopSellingAllTime(ctx context.Context, sellerID, limit int) ([]entity.Product, error)
		GetSellerProducts(ctx context.Context, sellerID int) ([]entity.Product, error)
	}

	Sellers interface {
		// GetSellerByUserID resolves the seller profile of a user;
		// gerr.ErrSellerNotFound when the user has none.
		GetSellerByUserID(ctx context.Context, userID int) (*entity.Seller, error)
		GetSellerByID(ctx context.Context, sellerID int) (*entity.Seller, error)
		ListSellers(ctx context.Context) ([]entity.Seller, error)
	}

	ReportAudit interface {
		// AddReportAudit appends one audit record. Audit rows are
		// append-only and written exactly once per export attempt.
		AddReportAudit(ctx context.Context, audit *entity.ReportAudit) (int, error)
	}

	Repository interface {
		Orders() Orders
		Products() Products
		Sellers() Sellers
		ReportAudit() ReportAudit
		Now() time.Time
		Ping(ctx context.Context) error
		Close()
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
