package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// IdentityProvider is the opaque identity service: sign-in/sign-up/sign-out
// plus a session-change subscription.
type IdentityProvider interface {
	// Subscribe registers fn for session changes and returns an
	// unsubscribe handle. fn is called immediately with the current
	// principal (nil when anonymous), then on every change.
	Subscribe(fn func(principal *domain.Principal)) (unsubscribe func())

	SignIn(ctx context.Context, email, password string) (domain.Principal, error)
	SignUp(ctx context.Context, email, password string) (domain.Principal, error)
	SignOut(ctx context.Context) error
}
