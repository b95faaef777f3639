package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
	"github.com/vhoanghac/sellerdash/internal/gerr"
)

type sellersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Sellers() dependency.Sellers {
	return &sellersStore{MYSQLStore: ms}
}

func (ms *sellersStore) GetSellerByUserID(ctx context.Context, userID int) (*entity.Seller, error) {
	s, err := QueryNamedOne[entity.Seller](ctx, ms.DB(), `
		SELECT id, user_id, shop_name, created_at
		FROM seller
		WHERE user_id = :userId
	`, map[string]any{"userId": userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrSellerNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (ms *sellersStore) GetSellerByID(ctx context.Context, sellerID int) (*entity.Seller, error) {
	s, err := QueryNamedOne[entity.Seller](ctx, ms.DB(), `
		SELECT id, user_id, shop_name, created_at
		FROM seller
		WHERE id = :sellerId
	`, map[string]any{"sellerId": sellerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrSellerNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (ms *sellersStore) ListSellers(ctx context.Context) ([]entity.Seller, error) {
	return QueryListNamed[entity.Seller](ctx, ms.DB(), `
		SELECT id, user_id, shop_name, created_at
		FROM seller
		ORDER BY id
	`, map[string]any{})
}
