package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// vastra work — run queue workers without the HTTP server, for scaling job
// processing independently of web traffic.
var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Run queue workers until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := bootContainer(ctx)
		if err != nil {
			return err
		}
		defer closeContainer(c)

		jobs.RegisterAll()

		n := config.QueueWorkers()
		fmt.Printf("Running %d queue workers (driver: %s)…\n", n, config.QueueDriver())
		queue.StartWorkers(ctx, n)

		<-ctx.Done()
		fmt.Println("stopping workers")
		return nil
	},
}
