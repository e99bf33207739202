package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/transcontinental/portal/internal/activity"
	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/cache"
	"github.com/transcontinental/portal/internal/config"
	"github.com/transcontinental/portal/internal/kafka"
	"github.com/transcontinental/portal/internal/repository/postgresql"
	"github.com/transcontinental/portal/internal/server"
	"github.com/transcontinental/portal/internal/storage"
	"github.com/transcontinental/portal/internal/upload"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox publisher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, database, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer database.Close()
	defer func() { _ = log.Sync() }()

	shipmentRepo := postgresql.NewShipmentRepo(database)
	clientRepo := postgresql.NewClientRepo(database)
	adminRepo := postgresql.NewAdminRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	blobs, err := upload.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}
	intake := upload.NewIntake(blobs, cfg.UploadURLPrefix, cfg.UploadMaxFileBytes, log.Named("upload"))

	pending := cache.NewPendingCache(shipmentRepo, log.Named("cache"))
	if err := pending.LoadInitialData(ctx); err != nil {
		return fmt.Errorf("load review queue: %w", err)
	}

	stg := storage.NewStorage(database, shipmentRepo, clientRepo, adminRepo, outboxRepo,
		storage.WithFileChecker(intake),
		storage.WithPendingCache(pending),
		storage.WithEventTopic(cfg.KafkaTopic),
		storage.WithLogger(log.Named("storage")),
	)

	if err := ensureConfiguredAdmin(ctx, cfg, stg, log); err != nil {
		return err
	}

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewKafkaProducer(cfg.KafkaBrokers, log.Named("kafka"))
	} else {
		log.Info("no kafka brokers configured, events go to the log")
		producer = kafka.NewConsoleProducer(log.Named("events"))
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, log)

	feed := activity.NewFeed(stg, cfg.ActivityPerSource, cfg.ActivityLimit, log)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	srv := server.New(stg, intake, feed, tokens, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		defer publisher.Shutdown()
		return publisher.Run(gctx)
	})

	err = g.Wait()
	log.Info("server gracefully stopped")
	return err
}

// ensureConfiguredAdmin makes sure the super-admin named by ADMIN_EMAIL exists.
func ensureConfiguredAdmin(ctx context.Context, cfg *config.Config, stg *storage.Storage, log *zap.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_EMAIL is set without ADMIN_PASSWORD, skipping admin bootstrap")
		return nil
	}

	admin, created, err := stg.EnsureSuperAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	log.Info("super-admin ready", zap.String("email", admin.Email), zap.Bool("created", created))
	return nil
}
