// Command storefront runs a scripted shopping session against a cart API
// and product catalog: browse, defer an add-to-cart behind login, sign
// in, mutate the remote cart, print the subtotal, sign out.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/gateway"
	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/internal/store"
)

type config struct {
	CartAPIURL   string     `env:"CART_API_URL" envDefault:"https://fakestoreapi.com"`
	CatalogURL   string     `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com"`
	SnapshotPath string     `env:"SNAPSHOT_PATH"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("storefront failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("env.Parse: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With("service", "storefront")
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	storeOpts := []store.Option{store.WithLogger(logger)}
	if cfg.SnapshotPath != "" {
		snapshots, err := store.OpenSnapshotStore(cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("store.OpenSnapshotStore: %w", err)
		}
		defer snapshots.Close()
		storeOpts = append(storeOpts, store.WithSnapshots(snapshots))
	}
	cartStore := store.New(storeOpts...)

	gw, err := gateway.New(cfg.CartAPIURL)
	if err != nil {
		return fmt.Errorf("gateway.New: %w", err)
	}

	products, err := catalog.New(cfg.CatalogURL)
	if err != nil {
		return fmt.Errorf("catalog.New: %w", err)
	}

	svc, err := cart.NewService(
		cart.NewRemoteBackend(gw, cartStore),
		cart.WithCatalog(products),
		cart.WithNotifier(notify.NewDeduper(logger)),
	)
	if err != nil {
		return fmt.Errorf("cart.NewService: %w", err)
	}

	provider := identity.NewMemory()
	binder := session.New(cartStore, gw, svc,
		session.WithRemoteOnLogin(), session.WithLogger(logger))
	unsubscribe := binder.Bind(provider)
	defer unsubscribe()

	featured, err := products.Products(ctx)
	if err != nil {
		return fmt.Errorf("products.Products: %w", err)
	}
	if len(featured) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	logger.Info("catalog loaded", slog.Int("products", len(featured)))

	// Anonymous add-to-cart is deferred behind the login redirect.
	binder.Defer(domain.PendingIntent{
		Action:  domain.IntentAddToCart,
		Product: featured[0],
	})

	if _, err := provider.SignUp(ctx, "shopper@example.com", "opensesame"); err != nil {
		return fmt.Errorf("provider.SignUp: %w", err)
	}

	if len(featured) > 1 {
		if _, err := svc.AddItem(ctx, featured[1].ID, 2); err != nil {
			logger.Warn("add item failed", slog.Any("err", err))
		}
	}

	count, err := svc.Count(ctx)
	if err != nil {
		return fmt.Errorf("svc.Count: %w", err)
	}

	subtotal, err := svc.Subtotal(ctx)
	if err != nil {
		return fmt.Errorf("svc.Subtotal: %w", err)
	}

	logger.Info("cart ready",
		slog.Int("count", count),
		slog.String("subtotal", subtotal.String()),
		slog.String("remote_cart_id", cartStore.RemoteCartID()))

	if err := provider.SignOut(ctx); err != nil {
		return fmt.Errorf("provider.SignOut: %w", err)
	}
	logger.Info("signed out", slog.Int("remaining_items", cartStore.Count()))

	return nil
}
