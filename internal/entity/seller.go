package entity

import (
	"database/sql"
	"time"
)

// Seller represents the seller table
type Seller struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	ShopName  string    `db:"shop_name"`
	CreatedAt time.Time `db:"created_at"`
}

// Customer represents the user table, restricted to the fields the
// aggregation core reads.
type Customer struct {
	ID          int            `db:"id"`
	DisplayName string         `db:"display_name"`
	Province    sql.NullString `db:"province"`
	District    sql.NullString `db:"district"`
	Ward        sql.NullString `db:"ward"`
}
