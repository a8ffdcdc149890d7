package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/contactbook-backend/internal/app"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

var (
	configPath string

	log *logger.Logger
	cfg app.Config
)

var rootCmd = &cobra.Command{
	Use:   "contactbook",
	Short: "contactbook - personal contact management API",
	Long: `contactbook serves an authenticated contact CRUD API backed by MongoDB,
Postgres or SQLite.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		mode := strings.TrimSpace(os.Getenv("LOG_MODE"))
		if mode == "" {
			mode = "development"
		}
		var err error
		log, err = logger.New(mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log.Info("Loading configuration...")
		cfg, err = app.LoadConfig(configPath, log)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONTACTS_CONFIG"), "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, eventsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
