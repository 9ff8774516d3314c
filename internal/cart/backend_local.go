package cart

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/store"
)

// localBackend mutates the cart store directly. All operations are
// synchronous; the only failure is an invalid quantity.
type localBackend struct {
	store *store.CartStore
}

func NewLocalBackend(cartStore *store.CartStore) port.CartBackend {
	return &localBackend{store: cartStore}
}

func (b *localBackend) AddItem(_ context.Context, productID string, quantity int) (domain.MutationResult, error) {
	if err := b.store.AddLocalItem(productID, quantity); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.MutationResult{Items: b.store.Items()}, nil
}

func (b *localBackend) RemoveItem(_ context.Context, productID string) (domain.MutationResult, error) {
	b.store.RemoveLocalItem(productID)
	return domain.MutationResult{Items: b.store.Items()}, nil
}

func (b *localBackend) UpdateQuantity(_ context.Context, productID string, quantity int) (domain.MutationResult, error) {
	if err := b.store.SetLocalQuantity(productID, quantity); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.MutationResult{Items: b.store.Items()}, nil
}

func (b *localBackend) Items(_ context.Context) ([]domain.CartItem, error) {
	return b.store.Items(), nil
}
