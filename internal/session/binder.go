// Package session binds identity-provider session changes to cart
// lifecycle transitions: owner hand-off and lazy remote cart creation on
// login, unconditional cart reset on logout, and one-shot replay of a
// deferred add-to-cart intent after authentication.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/store"
)

// ItemAdder is the slice of the cart service the binder needs to replay a
// pending intent.
type ItemAdder interface {
	AddItem(ctx context.Context, productID string, quantity int) (domain.MutationResult, error)
}

// Binder is a two-state machine: Anonymous and Authenticated(userID).
type Binder struct {
	store   *store.CartStore
	gateway port.CartGateway
	adder   ItemAdder
	logger  *slog.Logger

	// remoteOnLogin switches the store to remote mode when a principal
	// signs in, mirroring the storefront's API-cart configuration toggle.
	remoteOnLogin bool
	callTimeout   time.Duration

	mu            sync.Mutex
	authenticated bool
	userID        string
	pending       *domain.PendingIntent
}

type Option func(*Binder)

func WithRemoteOnLogin() Option {
	return func(b *Binder) { b.remoteOnLogin = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) { b.logger = logger }
}

func WithCallTimeout(timeout time.Duration) Option {
	return func(b *Binder) { b.callTimeout = timeout }
}

func New(cartStore *store.CartStore, gw port.CartGateway, adder ItemAdder, opts ...Option) *Binder {
	b := &Binder{
		store:       cartStore,
		gateway:     gw,
		adder:       adder,
		logger:      slog.Default(),
		callTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Bind subscribes to the identity provider and returns the unsubscribe
// handle. The provider replays the current principal immediately.
func (b *Binder) Bind(provider port.IdentityProvider) (unsubscribe func()) {
	return provider.Subscribe(b.onSessionChange)
}

// Defer stores a pending intent to be consumed exactly once after the
// next transition into Authenticated. A later intent replaces an earlier
// unconsumed one.
func (b *Binder) Defer(intent domain.PendingIntent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = &intent
}

// Drop discards an unconsumed pending intent, e.g. when the user
// navigates away from the login redirect.
func (b *Binder) Drop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

func (b *Binder) onSessionChange(principal *domain.Principal) {
	if principal == nil {
		b.onSignedOut()
		return
	}
	b.onSignedIn(*principal)
}

func (b *Binder) onSignedIn(principal domain.Principal) {
	b.mu.Lock()
	entered := !b.authenticated
	b.authenticated = true
	b.userID = principal.UserID

	var intent *domain.PendingIntent
	if entered {
		intent = b.pending
		b.pending = nil
	}
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.callTimeout)
	defer cancel()

	b.store.SetOwner(principal.UserID)

	if b.remoteOnLogin {
		b.store.SetMode(domain.ModeRemote)
	}

	if b.store.Mode() == domain.ModeRemote && b.store.RemoteCartID() == "" {
		cartID, err := b.gateway.CreateCart(ctx, principal.UserID)
		if err != nil {
			// Tolerated: the next mutation fails with
			// ErrCartNotInitialized and the UI can retry.
			b.logger.Warn("remote cart create failed",
				slog.String("user_id", principal.UserID), slog.Any("err", err))
		} else {
			b.store.SetRemoteCartID(cartID)
		}
	}

	if intent != nil && intent.Action == domain.IntentAddToCart {
		if _, err := b.adder.AddItem(ctx, intent.Product.ID, 1); err != nil {
			b.logger.Warn("pending intent replay failed",
				slog.String("product_id", intent.Product.ID), slog.Any("err", err))
		}
	}
}

func (b *Binder) onSignedOut() {
	b.mu.Lock()
	wasAuthenticated := b.authenticated
	b.authenticated = false
	b.userID = ""
	b.mu.Unlock()

	if !wasAuthenticated {
		return
	}

	// Local items and the remote linkage are both discarded; the
	// server-side cart itself stays.
	b.store.ClearAll()
}

// Authenticated reports the current state and principal id.
func (b *Binder) Authenticated() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userID, b.authenticated
}
