package store

import (
	"context"

	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

type productsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Products() dependency.Products {
	return &productsStore{MYSQLStore: ms}
}

const productSelect = `
	SELECT p.id, p.seller_id, p.category_id, c.name AS category_name,
		p.name, p.price, p.quantity, p.total_sold,
		COALESCE(p.image_url, '') AS image_url, p.created_at
	FROM product p
	LEFT JOIN category c ON p.category_id = c.id
`

func (ms *productsStore) GetLowStock(ctx context.Context, sellerID, threshold, limit int) ([]entity.Product, error) {
	return QueryListNamed[entity.Product](ctx, ms.DB(), productSelect+`
		WHERE p.seller_id = :sellerId AND p.quantity < :threshold
		ORDER BY p.quantity ASC, p.id ASC
		LIMIT :limit
	`, map[string]any{"sellerId": sellerID, "threshold": threshold, "limit": limit})
}

func (ms *productsStore) GetTopSellingAllTime(ctx context.Context, sellerID, limit int) ([]entity.Product, error) {
	return QueryListNamed[entity.Product](ctx, ms.DB(), productSelect+`
		WHERE p.seller_id = :sellerId AND p.total_sold > 0
		ORDER BY p.total_sold DESC, p.id ASC
		LIMIT :limit
	`, map[string]any{"sellerId": sellerID, "limit": limit})
}

func (ms *productsStore) GetSellerProducts(ctx context.Context, sellerID int) ([]entity.Product, error) {
	return QueryListNamed[entity.Product](ctx, ms.DB(), productSelect+`
		WHERE p.seller_id = :sellerId
		ORDER BY p.id ASC
	`, map[string]any{"sellerId": sellerID})
}
