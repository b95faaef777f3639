package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

func (osn OrderStatusName) String() string {
	return string(osn)
}

const (
	OrderStatusPending    OrderStatusName = "PENDING"
	OrderStatusConfirmed  OrderStatusName = "CONFIRMED"
	OrderStatusProcessing OrderStatusName = "PROCESSING"
	OrderStatusShipping   OrderStatusName = "SHIPPING"
	OrderStatusDelivered  OrderStatusName = "DELIVERED"
	OrderStatusCancelled  OrderStatusName = "CANCELLED"
)

// ValidOrderStatusNames is a set of valid order status names
var ValidOrderStatusNames = map[OrderStatusName]bool{
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusProcessing: true,
	OrderStatusShipping:   true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// ParseOrderStatus maps a raw status string to an OrderStatusName. Unknown
// values fall back to PENDING; existing callers rely on the silent default.
func ParseOrderStatus(raw string) OrderStatusName {
	s := OrderStatusName(raw)
	if ValidOrderStatusNames[s] {
		return s
	}
	return OrderStatusPending
}

// Order represents the orders table. Monetary fields are non-negative;
// final_total = subtotal - discount + shipping_fee + tax (assumed upstream,
// never recomputed here).
type Order struct {
	ID            int             `db:"id"`
	UUID          string          `db:"uuid"`
	CustomerID    sql.NullInt64   `db:"customer_id"`
	SellerID      int             `db:"seller_id"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Discount      decimal.Decimal `db:"discount"`
	ShippingFee   decimal.Decimal `db:"shipping_fee"`
	Tax           decimal.Decimal `db:"tax"`
	FinalTotal    decimal.Decimal `db:"final_total"`
	Status        OrderStatusName `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	CreatedAt     time.Time       `db:"created_at"`
}

// OrderItem represents the order_item table
type OrderItem struct {
	ID           int             `db:"id"`
	OrderID      int             `db:"order_id"`
	ProductID    int             `db:"product_id"`
	ProductName  string          `db:"product_name"`
	CategoryName sql.NullString  `db:"category_name"`
	Quantity     int             `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	LineTotal    decimal.Decimal `db:"line_total"`
}

// SellerOrder is one order of the aggregation snapshot: the order row plus
// its items (with product category) and the customer's default province.
// The aggregation core treats a []SellerOrder slice as immutable input.
type SellerOrder struct {
	Order
	Items []OrderItem
	// CustomerProvince is the province of the customer's default shipping
	// address, empty when the customer has none.
	CustomerProvince sql.NullString
	CustomerName     sql.NullString
}
