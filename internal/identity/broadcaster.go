package identity

import (
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
)

// broadcaster fans session changes out to subscribers. Each subscriber is
// called immediately with the current principal on subscribe, then on
// every change. Callbacks run on the caller's goroutine, in registration
// order, outside the broadcaster lock.
type broadcaster struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]func(*domain.Principal)
	current *domain.Principal
}

func (b *broadcaster) Subscribe(fn func(*domain.Principal)) (unsubscribe func()) {
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]func(*domain.Principal))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	current := b.current
	b.mu.Unlock()

	fn(current)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) broadcast(principal *domain.Principal) {
	b.mu.Lock()
	b.current = principal
	fns := make([]func(*domain.Principal), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(principal)
	}
}

// Current returns the last broadcast principal, nil when anonymous.
func (b *broadcaster) Current() *domain.Principal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
