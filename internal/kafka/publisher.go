package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/metrics"
	"github.com/transcontinental/portal/internal/repository"
	"github.com/transcontinental/portal/internal/storage"
)

var errShuttingDown = errors.New("publisher shutdown during batch processing")

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher forwards outbox tasks to a Producer.
type Publisher struct {
	db             db.DB
	repo           storage.OutboxTaskRepository
	producer       Producer
	config         PublisherConfig
	logger         *zap.Logger
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
	timeNow        func() time.Time
}

func NewPublisher(db db.DB, repo storage.OutboxTaskRepository, producer Producer, config PublisherConfig, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		db:             db,
		repo:           repo,
		producer:       producer,
		config:         config,
		logger:         logger.With(zap.String("component", "outbox_publisher")),
		shutdownSignal: make(chan struct{}),
		timeNow:        func() time.Time { return time.Now().UTC() },
	}
}

// Run polls the outbox until ctx is cancelled or Shutdown is called.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("starting outbox publisher", zap.Duration("poll_interval", p.config.PollInterval))
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil && !errors.Is(err, errShuttingDown) && ctx.Err() == nil {
				metrics.OperationErrorsTotal.WithLabelValues("outbox_batch").Inc()
				p.logger.Error("failed to process outbox batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher received shutdown signal")
			return nil
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled")
			return nil
		}
	}
}

// Shutdown stops Run, waits for the current batch and closes the producer.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.shutdownSignal)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			p.logger.Info("outbox publisher stopped")
		case <-time.After(30 * time.Second):
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close producer", zap.Error(err))
		}
	})
}

func (p *Publisher) processBatch(ctx context.Context) error {
	tx, err := p.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for fetching tasks: %w", err)
	}

	tasks, err := p.claim(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			p.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction after marking tasks as PROCESSING: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	p.logger.Debug("fetched outbox tasks", zap.Int("count", len(tasks)))

	for _, task := range tasks {
		select {
		case <-p.shutdownSignal:
			p.logger.Warn("shutdown during batch processing", zap.Stringer("task_id", task.ID))
			return errShuttingDown
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := p.processSingleTask(ctx, task); err != nil {
			p.logger.Warn("failed to process outbox task", zap.Stringer("task_id", task.ID), zap.Error(err))
		}
	}

	return nil
}

func (p *Publisher) claim(ctx context.Context, tx db.Tx) ([]*repository.OutboxTask, error) {
	tasks, err := p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to get processable tasks: %w", err)
	}

	for _, task := range tasks {
		err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
		}
	}
	return tasks, nil
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) error {
	key := []byte(task.ID.String())

	if err := p.producer.SendMessage(ctx, task.Topic, key, task.Payload); err != nil {
		attempts := task.Attempts + 1
		errMsg := err.Error()
		metrics.OutboxTasksTotal.WithLabelValues("failed").Inc()

		if attempts >= p.config.MaxAttempts {
			p.logger.Error("outbox task reached max attempts",
				zap.Stringer("task_id", task.ID),
				zap.Int("attempts", attempts),
			)
		}

		if updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, attempts, &errMsg, nil); updateErr != nil {
			return fmt.Errorf("failed to update task status after send failure: %w", updateErr)
		}
		return err
	}

	metrics.OutboxTasksTotal.WithLabelValues("published").Inc()
	now := p.timeNow()
	if err := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts, nil, &now); err != nil {
		return fmt.Errorf("failed to update task status after successful send: %w", err)
	}
	return nil
}
