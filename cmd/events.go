package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/contactbook-backend/internal/clients/redis"
	types "github.com/yungbote/contactbook-backend/internal/domain"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail contact change events from the redis channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bus, err := redis.NewContactBus(ctx, log, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer bus.Close()

		out := cmd.OutOrStdout()
		err = bus.StartForwarder(ctx, func(evt types.ContactEvent) {
			fmt.Fprintf(out, "%s\t%s\tcontact=%s\towner=%s\n", evt.At.Format(time.RFC3339), evt.Type, evt.ContactID, evt.OwnerID)
		})
		if err != nil {
			return err
		}
		log.Info("Listening for contact events", "channel", cfg.Redis.Channel)
		<-ctx.Done()
		return nil
	},
}
