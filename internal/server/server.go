// Package server boots the HTTP process: container, routes, background
// loops, then a listener that drains on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/notifications"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/config"
	internalapp "github.com/shashiranjanraj/vastra/internal/app"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/notification"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/schedule"
)

const (
	bootTimeout    = 15 * time.Second
	drainTimeout   = 10 * time.Second
	cartSweepEvery = 10 * time.Minute
)

// Start runs the server until the process receives a stop signal.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, bootTimeout)
	c, err := internalapp.New(bootCtx)
	cancel()
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	r := router.New()
	if err := routes.RegisterAPI(r, c); err != nil {
		return fmt.Errorf("server: register routes: %w", err)
	}

	jobs.RegisterAll()
	queue.StartWorkers(ctx, config.QueueWorkers())

	notification.SetSlackWebhook(config.SlackWebhook())
	event.Listen(controllers.EventOrderPlaced, func(payload interface{}) {
		e, ok := payload.(controllers.OrderPlacedEvent)
		if !ok {
			return
		}
		logger.Info("order placed", "order_id", e.OrderID, "buyer", e.Buyer)
		if config.OpsEmail() != "" || config.SlackWebhook() != "" {
			notification.SendAsync(config.OpsEmail(), &notifications.OrderPlaced{
				OrderID: e.OrderID,
				Total:   e.Total.String(),
			})
		}
	})

	go c.SweepCarts(ctx, cartSweepEvery)
	go broadcastCatalogue(ctx, c)

	schedule.Every(1).Hours().Name("cart-registry-report").Run(func() {
		logger.Debug("cart registry size", "carts", c.Carts.Len())
	})
	go schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("vastra listening", "addr", srv.Addr, "env", config.AppEnv())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// broadcastCatalogue feeds catalogue snapshots from the change stream into
// the websocket hub. Loading frames are skipped; connected clients only see
// real snapshots.
func broadcastCatalogue(ctx context.Context, c *internalapp.Container) {
	sub := c.Products.Watch(ctx)
	defer sub.Cancel()

	for res := range sub.C {
		if res.IsLoading() {
			continue
		}
		if err := c.Hub.BroadcastJSON(res); err != nil {
			logger.Warn("broadcast catalogue", "error", err)
		}
	}
}
