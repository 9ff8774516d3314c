package store

import (
	"log/slog"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartStore holds the canonical cart state for one user session.
//
// All operations are synchronous and atomic with respect to a single
// caller. Only the cart service and the session binder write to it.
type CartStore struct {
	mu   sync.Mutex
	cart domain.Cart

	snapshots *SnapshotStore
	logger    *slog.Logger
}

type Option func(*CartStore)

// WithSnapshots persists the cart to local storage after every mutation
// and restores it on construction. Persistence is best-effort: a failed
// write is logged, never surfaced to the mutating caller.
func WithSnapshots(snapshots *SnapshotStore) Option {
	return func(s *CartStore) { s.snapshots = snapshots }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *CartStore) { s.logger = logger }
}

func New(opts ...Option) *CartStore {
	s := &CartStore{
		cart:   domain.Cart{Mode: domain.ModeLocal},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.snapshots != nil {
		cart, ok, err := s.snapshots.Load()
		if err != nil {
			s.logger.Warn("cart snapshot load failed", slog.Any("err", err))
		} else if ok {
			s.cart = cart
		}
	}

	return s
}

// SetMode switches between local and remote mode. Switching to local
// drops the remote cart reference; switching to remote does not create a
// remote cart, that is the session binder's lazy-create path.
func (s *CartStore) SetMode(mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Mode = mode
	if mode == domain.ModeLocal {
		s.cart.RemoteCartID = ""
	}
	s.persistLocked()
}

// AddLocalItem merges quantity into the line for productID, inserting a
// new line when absent.
func (s *CartStore) AddLocalItem(productID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = domain.MergeItem(s.cart.Items, productID, quantity)
	s.persistLocked()
	return nil
}

// RemoveLocalItem deletes the line for productID. Absent product is a no-op.
func (s *CartStore) RemoveLocalItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = domain.RemoveItem(s.cart.Items, productID)
	s.persistLocked()
}

// SetLocalQuantity overwrites the quantity for an existing line.
// Absent product is a no-op: set does not implicitly add.
func (s *CartStore) SetLocalQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = domain.SetQuantity(s.cart.Items, productID, quantity)
	s.persistLocked()
	return nil
}

func (s *CartStore) SetRemoteCartID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.RemoteCartID = id
	s.persistLocked()
}

func (s *CartStore) SetOwner(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.OwnerID = userID
	s.persistLocked()
}

// SetItems overwrites the item list from a confirmed remote response.
func (s *CartStore) SetItems(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = domain.CopyItems(items)
	s.persistLocked()
}

// ClearAll resets to local mode, empty items and no owner. It is the
// exclusive mechanism invoked on sign-out; the server-side cart itself is
// not deleted, only the client's reference to it.
func (s *CartStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{Mode: domain.ModeLocal}
	s.persistLocked()
}

func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CopyItems(s.cart.Items)
}

func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CountItems(s.cart.Items)
}

func (s *CartStore) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Mode
}

func (s *CartStore) RemoteCartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.RemoteCartID
}

func (s *CartStore) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.OwnerID
}

// Snapshot returns a copy of the full cart state.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart
	cart.Items = domain.CopyItems(s.cart.Items)
	return cart
}

func (s *CartStore) persistLocked() {
	if s.snapshots == nil {
		return
	}

	if err := s.snapshots.Save(s.cart); err != nil {
		s.logger.Warn("cart snapshot save failed", slog.Any("err", err))
	}
}
