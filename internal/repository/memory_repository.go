package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// memoryRepository keeps carts in a map. It backs the cart API in tests
// and when no database is configured.
type memoryRepository struct {
	mu    sync.Mutex
	carts map[string]domain.RemoteCart
}

func NewMemory() port.CartRepository {
	return &memoryRepository{carts: make(map[string]domain.RemoteCart)}
}

func (r *memoryRepository) CreateCart(_ context.Context, ownerID string) (domain.RemoteCart, error) {
	if ownerID == "" {
		return domain.RemoteCart{}, fmt.Errorf("ownerID is empty")
	}

	cart := domain.RemoteCart{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Items:   []domain.CartItem{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = cart

	return cart, nil
}

func (r *memoryRepository) GetCart(_ context.Context, cartID string) (domain.RemoteCart, error) {
	if cartID == "" {
		return domain.RemoteCart{}, fmt.Errorf("cartID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return domain.RemoteCart{}, domain.ErrCartNotFound
	}

	cart.Items = domain.CopyItems(cart.Items)
	return cart, nil
}

func (r *memoryRepository) ReplaceItems(_ context.Context, cartID, ownerID string, items []domain.CartItem) (domain.RemoteCart, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return domain.RemoteCart{}, domain.ErrCartNotFound
	}

	cart.OwnerID = ownerID
	cart.Items = domain.CopyItems(items)
	r.carts[cartID] = cart

	cart.Items = domain.CopyItems(cart.Items)
	return cart, nil
}
