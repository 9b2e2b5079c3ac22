// Package app owns the composition root. Every dependency is constructed
// here, once, in plain code: no service locator, no global Make calls.
// Reading New top to bottom is reading the whole object graph.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/store"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// cartTTL is how long an idle guest cart survives before the registry
// sweeps it. Two hours matches the session cookie lifetime.
const cartTTL = 2 * time.Hour

// Container is the fully wired application. Handlers receive the pieces
// they need as constructor arguments; nothing reaches back in at runtime.
type Container struct {
	Store *store.Store
	Cache *cache.Cache

	Auth     repositories.AuthRepository
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository

	Carts *viewmodel.CartRegistry
	Hub   *ws.Hub

	mongoLog *logger.MongoHandler
}

// New connects the backing services and wires the object graph. The context
// bounds connection attempts only; the container outlives it.
func New(ctx context.Context) (*Container, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}

	st, err := store.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return nil, fmt.Errorf("app: connect store: %w", err)
	}

	ca, err := cache.Connect(ctx)
	if err != nil {
		st.Close(context.Background())
		return nil, fmt.Errorf("app: connect cache: %w", err)
	}

	c := &Container{
		Store:    st,
		Cache:    ca,
		Auth:     repositories.NewMongoAuthRepository(st),
		Products: repositories.NewMongoProductRepository(st, ca),
		Orders:   repositories.NewMongoOrderRepository(st),
		Carts:    viewmodel.NewCartRegistry(cartTTL),
		Hub:      ws.NewHub(),
	}

	c.wireLogging()
	c.wireQueue()
	storage.Connect()

	go c.Hub.Run()

	return c, nil
}

// wireLogging fans log records out to Mongo alongside stdout when enabled.
func (c *Container) wireLogging() {
	if !config.LogToMongo() {
		return
	}
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	c.mongoLog = logger.NewMongoHandler(c.Store.Collection("logs"), slog.LevelInfo)
	logger.SetHandler(logger.NewMultiHandler(stdout, c.mongoLog))
}

// wireQueue selects the job driver and points failed-job persistence at the
// document store.
func (c *Container) wireQueue() {
	switch config.QueueDriver() {
	case "redis":
		queue.SetDriver(queue.NewRedisDriver(c.Cache.Client()))
	default:
		queue.SetDriver(queue.NewMemoryDriver())
	}
	queue.UseStore(c.Store.Collection("failed_jobs"))
}

// SweepCarts drops idle guest carts on a fixed interval until ctx ends.
// Run it as a goroutine from the server.
func (c *Container) SweepCarts(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Carts.Sweep()
		}
	}
}

// Close tears down in reverse construction order.
func (c *Container) Close(ctx context.Context) {
	if c.mongoLog != nil {
		c.mongoLog.Close()
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warn("close cache", "error", err)
	}
	if err := c.Store.Close(ctx); err != nil {
		logger.Warn("close store", "error", err)
	}
}
