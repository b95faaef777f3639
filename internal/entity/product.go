package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product table
type Product struct {
	ID           int             `db:"id"`
	SellerID     int             `db:"seller_id"`
	CategoryID   sql.NullInt64   `db:"category_id"`
	CategoryName sql.NullString  `db:"category_name"`
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	// Quantity is quantity on hand. Zero or negative values are a bug
	// signal upstream but must still render in low-stock views.
	Quantity  int       `db:"quantity"`
	TotalSold int       `db:"total_sold"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}

// Category represents the category table
type Category struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}
