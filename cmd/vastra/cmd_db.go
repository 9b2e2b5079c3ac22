package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/database/indexes"
	"github.com/shashiranjanraj/vastra/database/seeders"
	internalapp "github.com/shashiranjanraj/vastra/internal/app"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/store"
)

const cmdTimeout = 30 * time.Second

func bootContainer(ctx context.Context) (*internalapp.Container, error) {
	bootCtx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	return internalapp.New(bootCtx)
}

func closeContainer(c *internalapp.Container) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Close(ctx)
}

func registerRoutes(r *router.Router, c *internalapp.Container) error {
	return routes.RegisterAPI(r, c)
}

// connectStore opens just the document store, for commands that don't need
// the full container.
func connectStore(ctx context.Context) (*store.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return store.Connect(ctx, config.MongoURI(), config.MongoDatabase())
}

// vastra seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with starter data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		s, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close(context.Background())

		fmt.Println("Seeding database…")
		return seeders.RunAll(ctx, s)
	},
}

// vastra index — ensure all Mongo indexes exist.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Create the Mongo indexes the queries rely on",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		s, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close(context.Background())

		fmt.Println("Ensuring indexes…")
		if err := indexes.EnsureAll(ctx, s); err != nil {
			return err
		}
		fmt.Println("done")
		return nil
	},
}
