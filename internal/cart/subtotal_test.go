package cart_test

import (
	"context"
	"testing"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type fakeCatalog struct {
	products map[string]domain.Product
}

func (c *fakeCatalog) Product(_ context.Context, productID string) (domain.Product, error) {
	product, ok := c.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (c *fakeCatalog) Products(_ context.Context) ([]domain.Product, error) {
	var all []domain.Product
	for _, p := range c.products {
		all = append(all, p)
	}
	return all, nil
}

func (c *fakeCatalog) ProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var matched []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func usd(v string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(v), Currency: currency.USD}
}

func TestService_Subtotal(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Title: "Mug", Price: usd("9.99")},
		"p2": {ID: "p2", Title: "Shirt", Price: usd("24.50")},
	}}

	cartStore := store.New()
	svc, err := cart.NewService(cart.NewLocalBackend(cartStore), cart.WithCatalog(catalog))
	require.NoError(t, err)

	_, err = svc.AddItem(t.Context(), "p1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(t.Context(), "p2", 1)
	require.NoError(t, err)

	subtotal, err := svc.Subtotal(t.Context())
	require.NoError(t, err)

	// 2*9.99 + 24.50
	assert.Equal(t, "44.48", subtotal.Amount.String())
	assert.Equal(t, currency.USD, subtotal.Currency)
}

func TestService_SubtotalUnknownProduct(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]domain.Product{}}

	cartStore := store.New()
	svc, err := cart.NewService(cart.NewLocalBackend(cartStore), cart.WithCatalog(catalog))
	require.NoError(t, err)

	_, err = svc.AddItem(t.Context(), "ghost", 1)
	require.NoError(t, err)

	_, err = svc.Subtotal(t.Context())
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
