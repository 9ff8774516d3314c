package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const defaultTimeout = 10 * time.Second

// client is a read-only consumer of the product catalog API. The catalog
// resolves title/price/image for line items; the cart itself stores only
// product ids and quantities.
type client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *client) { c.httpc = httpc }
}

func New(baseURL string, opts ...Option) (port.ProductCatalog, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}

	c := &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type wireProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Image       string      `json:"image"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

func (c *client) Product(ctx context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	var wp wireProduct
	if err := c.get(ctx, "/products/"+url.PathEscape(productID), &wp); err != nil {
		return domain.Product{}, fmt.Errorf("GET /products/%s: %w", productID, err)
	}

	// The mock API answers 200 with a null body for unknown products.
	if wp.ID.String() == "" {
		return domain.Product{}, fmt.Errorf("GET /products/%s: %w", productID, domain.ErrProductNotFound)
	}

	return mapWireProduct(wp)
}

func (c *client) Products(ctx context.Context) ([]domain.Product, error) {
	var wps []wireProduct
	if err := c.get(ctx, "/products", &wps); err != nil {
		return nil, fmt.Errorf("GET /products: %w", err)
	}

	return mapWireProducts(wps)
}

func (c *client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("category is empty")
	}

	var wps []wireProduct
	if err := c.get(ctx, "/products/category/"+url.PathEscape(category), &wps); err != nil {
		return nil, fmt.Errorf("GET /products/category/%s: %w", category, err)
	}

	return mapWireProducts(wps)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Join(domain.ErrRemoteUnavailable, fmt.Errorf("httpc.Do: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(domain.ErrRemoteUnavailable, fmt.Errorf("json.Decode: %w", err))
	}

	return nil
}

func mapWireProduct(wp wireProduct) (domain.Product, error) {
	price, err := decimal.NewFromString(wp.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", wp.Price.String(), err)
	}

	return domain.Product{
		ID:          wp.ID.String(),
		Title:       wp.Title,
		Price:       domain.Money{Amount: price, Currency: currency.USD},
		Image:       wp.Image,
		Category:    wp.Category,
		Description: wp.Description,
	}, nil
}

func mapWireProducts(wps []wireProduct) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(wps))

	for _, wp := range wps {
		product, err := mapWireProduct(wp)
		if err != nil {
			return nil, fmt.Errorf("mapWireProduct: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}
