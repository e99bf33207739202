package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/config"
	"github.com/transcontinental/portal/internal/logger"
	"github.com/transcontinental/portal/internal/repository"
)

const groupID = "portal-events-consumer-group"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is not set")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        groupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Info("closing kafka reader")
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	log.Info("consumer connected", zap.String("topic", cfg.KafkaTopic), zap.Strings("brokers", cfg.KafkaBrokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("failed to read message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		fields := []zap.Field{
			zap.Time("timestamp", m.Time),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.ByteString("key", m.Key),
		}

		var ev repository.EventPayload
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Warn("undecodable event", append(fields, zap.ByteString("value", m.Value), zap.Error(err))...)
			continue
		}

		fields = append(fields,
			zap.String("type", ev.Type),
			zap.String("entity_type", ev.EntityType),
			zap.String("entity_id", ev.EntityID),
			zap.String("actor", ev.Actor),
			zap.Time("occurred_at", ev.OccurredAt),
		)
		if ev.NewStatus != "" {
			fields = append(fields, zap.String("old_status", ev.OldStatus), zap.String("new_status", ev.NewStatus))
		}
		log.Info("event", fields...)
	}
}
