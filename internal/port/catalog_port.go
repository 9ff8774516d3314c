package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// ProductCatalog resolves display metadata for line items.
type ProductCatalog interface {
	Product(ctx context.Context, productID string) (domain.Product, error)
	Products(ctx context.Context) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
}
