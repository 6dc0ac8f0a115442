// Package app contains the application setup for the storefront service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopflow/storefront/internal/cart"
	"github.com/shopflow/storefront/internal/cart/persistence"
	"github.com/shopflow/storefront/internal/catalog/service"
	"github.com/shopflow/storefront/internal/catalog/store"
	"github.com/shopflow/storefront/internal/config"
	"github.com/shopflow/storefront/internal/transport/rest"
	"github.com/shopflow/storefront/pkg/bootstrap"
	"github.com/shopflow/storefront/pkg/messaging"
	"github.com/shopflow/storefront/pkg/messaging/events"
	natspkg "github.com/shopflow/storefront/pkg/nats"
	"github.com/shopflow/storefront/pkg/server"
)

type Dependencies struct {
	Catalog   service.CatalogService
	CartStore *cart.Store
	Logger    *slog.Logger

	closers []func()
}

// Close releases external resources in reverse acquisition order.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// SetupDependencies wires the catalog source, the cart store with its
// persistence bridge, and the optional cart event publisher. The cart is
// rehydrated from the configured storage before any subscriber is attached,
// so restoring does not immediately write the snapshot back.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	catalogStore, err := setupCatalogStore(ctx, cfg, deps, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Catalog = service.NewService(catalogStore)

	kv, err := setupKeyValue(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.CartStore = cart.NewStore()
	bridge := persistence.NewBridge(kv, logger)
	bridge.Restore(ctx, deps.CartStore)
	bridge.Attach(ctx, deps.CartStore)

	if cfg.NATS.Enabled {
		if err := setupCartEvents(ctx, cfg, deps, logger); err != nil {
			deps.Close()
			return nil, err
		}
	}

	return deps, nil
}

// SetupHttpHandler initializes the HTTP routes for the storefront.
// Used by tests to exercise the API without a listening server.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, cfg)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	handler := rest.NewHandler(deps.Catalog, deps.CartStore, cfg.Catalog.PriceMin, cfg.Catalog.PriceMax, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

func setupCatalogStore(ctx context.Context, cfg *config.Config, deps *Dependencies, logger *slog.Logger) (store.CatalogStore, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Catalog.Database.URL, cfg.Catalog.Database.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		deps.closers = append(deps.closers, dbPool.Close)
		logger.Info("Catalog backed by PostgreSQL")
		return store.NewPgStore(dbPool), nil
	default:
		logger.Info("Catalog backed by in-memory seed data")
		return store.NewInMemoryStore(store.SeedProducts()), nil
	}
}

func setupKeyValue(ctx context.Context, cfg *config.Config, deps *Dependencies) (persistence.KeyValue, error) {
	switch cfg.Storage.Backend {
	case "file":
		kv, err := persistence.NewFileKV(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to set up file storage: %w", err)
		}
		return kv, nil
	case "redis":
		client, err := bootstrap.NewRedisClient(ctx, cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to set up redis storage: %w", err)
		}
		deps.closers = append(deps.closers, func() { _ = client.Close() })
		return persistence.NewRedisKV(client), nil
	default:
		return persistence.NewMemoryKV(), nil
	}
}

// cartEventQueueSize bounds the number of cart summaries waiting on the
// broker before the newest ones are dropped.
const cartEventQueueSize = 64

// setupCartEvents publishes a cart.updated summary after every committed
// cart transition. Store subscribers run inside the commit path, so the
// subscriber only enqueues: the broker round-trip happens on the async
// publisher's goroutine and a slow broker never stalls cart commands.
// Publish failures are logged, never surfaced to the command that
// triggered them.
func setupCartEvents(_ context.Context, cfg *config.Config, deps *Dependencies, logger *slog.Logger) error {
	nc, err := natspkg.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return err
	}
	deps.closers = append(deps.closers, nc.Close)

	js, err := natspkg.NewJetStreamContext(nc)
	if err != nil {
		return err
	}

	eventLogger := logger.With("component", "cart_events")
	publisher := messaging.NewAsyncPublisher(natspkg.NewNatsPublisher(js), cfg.NATS.Timeout, cartEventQueueSize, eventLogger)
	deps.closers = append(deps.closers, publisher.Close)

	deps.CartStore.Subscribe(func(lines []cart.Line) {
		publisher.Enqueue(events.CartUpdatedEvent{
			Lines:      len(lines),
			ItemCount:  cart.CountOf(lines),
			TotalPrice: cart.TotalOf(lines),
			UpdatedAt:  time.Now().UTC(),
		})
	})
	return nil
}
