package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

const productJSON = `{
	"id": 7,
	"title": "White Gold Ring",
	"price": 9.99,
	"image": "https://example.com/ring.jpg",
	"category": "jewelery",
	"description": "Classic ring"
}`

func TestClient_Product(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/7":
			_, _ = w.Write([]byte(productJSON))
		case "/products/404":
			w.WriteHeader(http.StatusNotFound)
		case "/products/null":
			_, _ = w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client, err := catalog.New(srv.URL)
	require.NoError(t, err)

	t.Run("known product: ok", func(t *testing.T) {
		product, err := client.Product(t.Context(), "7")
		require.NoError(t, err)

		assert.Equal(t, "7", product.ID)
		assert.Equal(t, "White Gold Ring", product.Title)
		assert.Equal(t, "9.99", product.Price.Amount.String())
		assert.Equal(t, currency.USD, product.Price.Currency)
		assert.Equal(t, "jewelery", product.Category)
	})

	t.Run("404: not found", func(t *testing.T) {
		_, err := client.Product(t.Context(), "404")
		require.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("null body: not found", func(t *testing.T) {
		_, err := client.Product(t.Context(), "null")
		require.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("500: remote unavailable", func(t *testing.T) {
		_, err := client.Product(t.Context(), "boom")
		require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})
}

func TestClient_Products(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`[` + productJSON + `]`))
		case "/products/category/jewelery":
			_, _ = w.Write([]byte(`[` + productJSON + `]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client, err := catalog.New(srv.URL)
	require.NoError(t, err)

	products, err := client.Products(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "White Gold Ring", products[0].Title)

	byCategory, err := client.ProductsByCategory(t.Context(), "jewelery")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "7", byCategory[0].ID)
}
