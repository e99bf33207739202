package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/config"
	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portal",
		Short:         "Shipment review portal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(serveCmd(), createAdminCmd())
	return cmd
}

// bootstrap loads the config, builds the logger and connects to the database
// with the schema applied.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, *db.Database, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	database, err := db.NewDb(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database init: %w", err)
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	return cfg, log, database, nil
}
