package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartBackend executes cart mutations against one of the two cart modes.
// LocalBackend mutates the in-memory store directly; RemoteBackend runs a
// fetch-compute-replace cycle against the cart API and syncs the store
// from the confirmed response.
type CartBackend interface {
	AddItem(ctx context.Context, productID string, quantity int) (domain.MutationResult, error)
	RemoveItem(ctx context.Context, productID string) (domain.MutationResult, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.MutationResult, error)
	Items(ctx context.Context) ([]domain.CartItem, error)
}

// CartRepository is the server-side cart storage behind the bundled cart API.
type CartRepository interface {
	CreateCart(ctx context.Context, ownerID string) (domain.RemoteCart, error)
	GetCart(ctx context.Context, cartID string) (domain.RemoteCart, error)
	ReplaceItems(ctx context.Context, cartID, ownerID string, items []domain.CartItem) (domain.RemoteCart, error)
}
