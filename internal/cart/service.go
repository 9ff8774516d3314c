// Package cart is the single entry point feature code uses to work with
// the cart. A Service dispatches to a local or remote backend selected at
// construction time and keeps the cart store in sync with the outcome.
package cart

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type Service struct {
	backend  port.CartBackend
	catalog  port.ProductCatalog
	notifier port.Notifier
}

type ServiceOption func(*Service)

// WithCatalog enables Subtotal by resolving line item prices through the
// product catalog.
func WithCatalog(catalog port.ProductCatalog) ServiceOption {
	return func(s *Service) { s.catalog = catalog }
}

// WithNotifier surfaces mutation failures as user-visible notifications.
func WithNotifier(notifier port.Notifier) ServiceOption {
	return func(s *Service) { s.notifier = notifier }
}

func NewService(backend port.CartBackend, opts ...ServiceOption) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is nil")
	}

	s := &Service{
		backend:  backend,
		notifier: port.NoopNotifier,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Service) AddItem(ctx context.Context, productID string, quantity int) (domain.MutationResult, error) {
	result, err := s.backend.AddItem(ctx, productID, quantity)
	if err != nil {
		s.notifier.Notify("could not add item to cart")
		return domain.MutationResult{}, fmt.Errorf("backend.AddItem: %w", err)
	}
	return result, nil
}

func (s *Service) RemoveItem(ctx context.Context, productID string) (domain.MutationResult, error) {
	result, err := s.backend.RemoveItem(ctx, productID)
	if err != nil {
		s.notifier.Notify("could not remove item from cart")
		return domain.MutationResult{}, fmt.Errorf("backend.RemoveItem: %w", err)
	}
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.MutationResult, error) {
	result, err := s.backend.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		s.notifier.Notify("could not update item quantity")
		return domain.MutationResult{}, fmt.Errorf("backend.UpdateQuantity: %w", err)
	}
	return result, nil
}

func (s *Service) Items(ctx context.Context) ([]domain.CartItem, error) {
	items, err := s.backend.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend.Items: %w", err)
	}
	return items, nil
}

// Count is the total quantity across all line items, 0 for an empty or
// uninitialized cart.
func (s *Service) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CountItems(items), nil
}

// Subtotal resolves each line item's price through the catalog and sums
// price times quantity.
func (s *Service) Subtotal(ctx context.Context) (domain.Money, error) {
	if s.catalog == nil {
		return domain.Money{}, fmt.Errorf("catalog is not configured")
	}

	items, err := s.Items(ctx)
	if err != nil {
		return domain.Money{}, err
	}

	var (
		total domain.Money
		first = true
	)

	for _, item := range items {
		product, err := s.catalog.Product(ctx, item.ProductID)
		if err != nil {
			return domain.Money{}, fmt.Errorf("catalog.Product[%s]: %w", item.ProductID, err)
		}

		line := product.Price.MulInt(item.Quantity)
		if first {
			total = line
			first = false
			continue
		}

		total, err = total.Add(line)
		if err != nil {
			return domain.Money{}, fmt.Errorf("total.Add: %w", err)
		}
	}

	return total, nil
}
