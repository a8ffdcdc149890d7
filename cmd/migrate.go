package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/contactbook-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables (SQL) or indexes (mongo) for the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		store, err := app.OpenStore(ctx, log, cfg.Store)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if cerr := store.Close(context.Background()); cerr != nil {
				log.Warn("store close failed", "error", cerr)
			}
		}()

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("Migration complete", "driver", cfg.Store.Driver)
		return nil
	},
}
