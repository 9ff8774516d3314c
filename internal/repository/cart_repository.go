package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// cartRepository is the Postgres storage behind the bundled cart API.
// Carts are whole documents: replace rewrites the full item list in one
// transaction.
type cartRepository struct {
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{pool: pool}, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, ownerID string) (domain.RemoteCart, error) {
	if ownerID == "" {
		return domain.RemoteCart{}, fmt.Errorf("ownerID is empty")
	}

	cartID := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO carts (id, owner_id) VALUES ($1, $2)`,
		cartID, ownerID)
	if err != nil {
		return domain.RemoteCart{}, fmt.Errorf("pool.Exec: %w", err)
	}

	return domain.RemoteCart{ID: cartID, OwnerID: ownerID, Items: []domain.CartItem{}}, nil
}

func (r *cartRepository) GetCart(ctx context.Context, cartID string) (domain.RemoteCart, error) {
	if cartID == "" {
		return domain.RemoteCart{}, fmt.Errorf("cartID is empty")
	}

	var ownerID string
	err := r.pool.QueryRow(ctx,
		`SELECT owner_id FROM carts WHERE id = $1`, cartID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RemoteCart{}, domain.ErrCartNotFound
		}
		return domain.RemoteCart{}, fmt.Errorf("pool.QueryRow: %w", err)
	}

	items, err := r.cartItems(ctx, cartID)
	if err != nil {
		return domain.RemoteCart{}, fmt.Errorf("cartItems: %w", err)
	}

	return domain.RemoteCart{ID: cartID, OwnerID: ownerID, Items: items}, nil
}

func (r *cartRepository) ReplaceItems(ctx context.Context, cartID, ownerID string, items []domain.CartItem) (domain.RemoteCart, error) {
	if cartID == "" {
		return domain.RemoteCart{}, fmt.Errorf("cartID is empty")
	}
	if ownerID == "" {
		return domain.RemoteCart{}, fmt.Errorf("ownerID is empty")
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return domain.RemoteCart{}, domain.ErrInvalidQuantity
		}
	}

	return withTx(ctx, r.pool, func(tx pgx.Tx) (domain.RemoteCart, error) {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cartID).Scan(&exists)
		if err != nil {
			return domain.RemoteCart{}, fmt.Errorf("tx.QueryRow: %w", err)
		}
		if !exists {
			return domain.RemoteCart{}, domain.ErrCartNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return domain.RemoteCart{}, fmt.Errorf("tx.Exec delete: %w", err)
		}

		for i, item := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO cart_items (cart_id, product_id, quantity, position) VALUES ($1, $2, $3, $4)`,
				cartID, item.ProductID, item.Quantity, i); err != nil {
				return domain.RemoteCart{}, fmt.Errorf("tx.Exec insert: %w", err)
			}
		}

		return domain.RemoteCart{
			ID:      cartID,
			OwnerID: ownerID,
			Items:   domain.CopyItems(items),
		}, nil
	})
}

func (r *cartRepository) cartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`, cartID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}
