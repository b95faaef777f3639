package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

type ordersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Orders() dependency.Orders {
	return &ordersStore{MYSQLStore: ms}
}

type orderRow struct {
	ID               int             `db:"id"`
	UUID             string          `db:"uuid"`
	CustomerID       sql.NullInt64   `db:"customer_id"`
	SellerID         int             `db:"seller_id"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	Discount         decimal.Decimal `db:"discount"`
	ShippingFee      decimal.Decimal `db:"shipping_fee"`
	Tax              decimal.Decimal `db:"tax"`
	FinalTotal       decimal.Decimal `db:"final_total"`
	Status           string          `db:"status"`
	PaymentMethod    string          `db:"payment_method"`
	CreatedAt        time.Time       `db:"created_at"`
	CustomerName     sql.NullString  `db:"customer_name"`
	CustomerProvince sql.NullString  `db:"customer_province"`
}

const orderSelect = `
	SELECT o.id, o.uuid, o.customer_id, o.seller_id,
		o.subtotal, o.discount, o.shipping_fee, o.tax, o.final_total,
		o.status, o.payment_method, o.created_at,
		u.display_name AS customer_name,
		a.province AS customer_province
	FROM customer_order o
	LEFT JOIN user u ON o.customer_id = u.id
	LEFT JOIN address a ON a.user_id = u.id AND a.is_default = 1
`

// GetSellerOrders materializes the aggregation snapshot for one seller and
// window: orders in [from, to] with nested items and the customer's default
// province. Two queries, no N+1.
func (ms *ordersStore) GetSellerOrders(ctx context.Context, sellerID int, from, to time.Time) ([]entity.SellerOrder, error) {
	rows, err := QueryListNamed[orderRow](ctx, ms.DB(), orderSelect+`
		WHERE o.seller_id = :sellerId
		AND o.created_at >= :from AND o.created_at <= :to
		ORDER BY o.created_at
	`, map[string]any{"sellerId": sellerID, "from": from, "to": to})
	if err != nil {
		return nil, err
	}
	return ms.attachItems(ctx, rows)
}

// GetAllOrders is the platform-wide variant used by the admin overview.
func (ms *ordersStore) GetAllOrders(ctx context.Context, from, to time.Time) ([]entity.SellerOrder, error) {
	rows, err := QueryListNamed[orderRow](ctx, ms.DB(), orderSelect+`
		WHERE o.created_at >= :from AND o.created_at <= :to
		ORDER BY o.created_at
	`, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, err
	}
	return ms.attachItems(ctx, rows)
}

func (ms *ordersStore) attachItems(ctx context.Context, rows []orderRow) ([]entity.SellerOrder, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	items, err := QueryListNamed[entity.OrderItem](ctx, ms.DB(), `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity,
			oi.unit_price, oi.line_total,
			COALESCE(p.name, '') AS product_name,
			c.name AS category_name
		FROM order_item oi
		LEFT JOIN product p ON oi.product_id = p.id
		LEFT JOIN category c ON p.category_id = c.id
		WHERE oi.order_id IN (:orderIds)
		ORDER BY oi.order_id, oi.id
	`, map[string]any{"orderIds": ids})
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[int][]entity.OrderItem, len(rows))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}

	orders := make([]entity.SellerOrder, len(rows))
	for i, r := range rows {
		orders[i] = entity.SellerOrder{
			Order: entity.Order{
				ID:            r.ID,
				UUID:          r.UUID,
				CustomerID:    r.CustomerID,
				SellerID:      r.SellerID,
				Subtotal:      r.Subtotal,
				Discount:      r.Discount,
				ShippingFee:   r.ShippingFee,
				Tax:           r.Tax,
				FinalTotal:    r.FinalTotal,
				Status:        entity.ParseOrderStatus(r.Status),
				PaymentMethod: r.PaymentMethod,
				CreatedAt:     r.CreatedAt,
			},
			Items:            itemsByOrder[r.ID],
			CustomerProvince: r.CustomerProvince,
			CustomerName:     r.CustomerName,
		}
	}
	return orders, nil
}
