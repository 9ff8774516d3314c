package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartGateway is the client of the external cart HTTP API.
//
// The API is whole-document-replace: there is no patch operation, so
// every mutation is expressed as fetch, compute the full new item list,
// replace.
type CartGateway interface {
	// CreateCart creates an empty server-side cart owned by ownerUserID
	// and returns its id.
	CreateCart(ctx context.Context, ownerUserID string) (string, error)

	// FetchCart returns the current server-side cart. An unknown id fails
	// with domain.ErrCartNotFound; a known cart with no items returns an
	// empty item list.
	FetchCart(ctx context.Context, remoteCartID string) (domain.RemoteCart, error)

	// ReplaceItems overwrites the complete item list of the cart and
	// returns the confirmed list.
	ReplaceItems(ctx context.Context, remoteCartID, ownerUserID string, items []domain.CartItem) ([]domain.CartItem, error)
}
