package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// MemoryProvider is an in-memory identity provider for tests and demos.
// Accounts live only for the provider's lifetime.
type MemoryProvider struct {
	mu       sync.Mutex
	accounts map[string]memoryAccount

	broadcaster
}

type memoryAccount struct {
	userID   string
	password string
}

func NewMemory() *MemoryProvider {
	return &MemoryProvider{accounts: make(map[string]memoryAccount)}
}

func (p *MemoryProvider) SignUp(_ context.Context, email, password string) (domain.Principal, error) {
	if email == "" {
		return domain.Principal{}, fmt.Errorf("email is empty")
	}
	if password == "" {
		return domain.Principal{}, fmt.Errorf("password is empty")
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		return domain.Principal{}, fmt.Errorf("account[%s] already exists", email)
	}
	account := memoryAccount{userID: uuid.NewString(), password: password}
	p.accounts[email] = account
	p.mu.Unlock()

	principal := domain.Principal{UserID: account.userID, Email: email}
	p.broadcast(&principal)
	return principal, nil
}

func (p *MemoryProvider) SignIn(_ context.Context, email, password string) (domain.Principal, error) {
	p.mu.Lock()
	account, exists := p.accounts[email]
	p.mu.Unlock()

	if !exists || account.password != password {
		return domain.Principal{}, domain.ErrAuthRequired
	}

	principal := domain.Principal{UserID: account.userID, Email: email}
	p.broadcast(&principal)
	return principal, nil
}

func (p *MemoryProvider) SignOut(_ context.Context) error {
	p.broadcast(nil)
	return nil
}

var _ port.IdentityProvider = (*MemoryProvider)(nil)
