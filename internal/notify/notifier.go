// Package notify surfaces user-visible messages. The deduper keeps a
// burst of identical failures (e.g. clearing a multi-item cart item by
// item while the API is down) from producing one notification per item.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
)

const defaultWindow = 5 * time.Second

type Deduper struct {
	logger *slog.Logger
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

type Option func(*Deduper)

func WithWindow(window time.Duration) Option {
	return func(d *Deduper) { d.window = window }
}

func WithClock(now func() time.Time) Option {
	return func(d *Deduper) { d.now = now }
}

func NewDeduper(logger *slog.Logger, opts ...Option) *Deduper {
	d := &Deduper{
		logger: logger,
		window: defaultWindow,
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Notify emits the message unless an identical one was emitted within the
// dedup window.
func (d *Deduper) Notify(message string) {
	d.mu.Lock()
	now := d.now()
	last, ok := d.seen[message]
	if ok && now.Sub(last) < d.window {
		d.mu.Unlock()
		return
	}
	d.seen[message] = now
	d.mu.Unlock()

	d.logger.Warn("notification", slog.String("message", message))
}

var _ port.Notifier = (*Deduper)(nil)
