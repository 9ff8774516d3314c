package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/store"
)

// remoteBackend runs every mutation as fetch-compute-replace against the
// cart API. The fetched list is authoritative, not the local cache, and
// the store is only overwritten from a confirmed replace response: on any
// failure the pre-call store state stands untouched.
type remoteBackend struct {
	gateway port.CartGateway
	store   *store.CartStore
	locks   *keyedMutex
}

func NewRemoteBackend(gw port.CartGateway, cartStore *store.CartStore) port.CartBackend {
	return &remoteBackend{
		gateway: gw,
		store:   cartStore,
		locks:   newKeyedMutex(),
	}
}

func (b *remoteBackend) AddItem(ctx context.Context, productID string, quantity int) (domain.MutationResult, error) {
	if quantity < 1 {
		return domain.MutationResult{}, domain.ErrInvalidQuantity
	}

	return b.mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		return domain.MergeItem(items, productID, quantity)
	})
}

func (b *remoteBackend) RemoveItem(ctx context.Context, productID string) (domain.MutationResult, error) {
	return b.mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		return domain.RemoveItem(items, productID)
	})
}

func (b *remoteBackend) UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.MutationResult, error) {
	if quantity < 1 {
		return domain.MutationResult{}, domain.ErrInvalidQuantity
	}

	return b.mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		return domain.SetQuantity(items, productID, quantity)
	})
}

// Items returns the authoritative remote item list and syncs the store
// from it. An uninitialized cart reads as empty, not as an error.
func (b *remoteBackend) Items(ctx context.Context) ([]domain.CartItem, error) {
	cartID := b.store.RemoteCartID()
	if cartID == "" {
		return nil, nil
	}

	remote, err := b.gateway.FetchCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("gateway.FetchCart: %w", err)
	}

	b.store.SetItems(remote.Items)
	return remote.Items, nil
}

// mutate runs one fetch-compute-replace cycle, serialized per cart id.
// When the fetch reports the remote cart vanished, a replacement cart is
// created and the cycle retried against it once, surfaced to the caller
// through MutationResult.CartRecreated.
func (b *remoteBackend) mutate(ctx context.Context, apply func([]domain.CartItem) []domain.CartItem) (domain.MutationResult, error) {
	cartID := b.store.RemoteCartID()
	if cartID == "" {
		return domain.MutationResult{}, domain.ErrCartNotInitialized
	}

	ownerID := b.store.Owner()
	if ownerID == "" {
		return domain.MutationResult{}, domain.ErrAuthRequired
	}

	unlock := b.locks.lock(cartID)
	defer unlock()

	recreated := false

	remote, err := b.gateway.FetchCart(ctx, cartID)
	switch {
	case errors.Is(err, domain.ErrCartNotFound):
		cartID, err = b.gateway.CreateCart(ctx, ownerID)
		if err != nil {
			return domain.MutationResult{}, fmt.Errorf("gateway.CreateCart: %w", err)
		}
		remote = domain.RemoteCart{ID: cartID, OwnerID: ownerID}
		recreated = true
	case err != nil:
		return domain.MutationResult{}, fmt.Errorf("gateway.FetchCart: %w", err)
	}

	confirmed, err := b.gateway.ReplaceItems(ctx, cartID, ownerID, apply(remote.Items))
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("gateway.ReplaceItems: %w", err)
	}

	// Confirmed by the gateway, now and only now the store moves.
	if recreated {
		b.store.SetRemoteCartID(cartID)
	}
	b.store.SetItems(confirmed)

	return domain.MutationResult{Items: confirmed, CartRecreated: recreated}, nil
}
