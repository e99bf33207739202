package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuditManager batches audit entries and writes them from a small worker
// pool so that request handlers never wait on log output.
type AuditManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration
	logger      *zap.Logger

	inputChan  chan AuditLogEntry
	batchChan  chan []AuditLogEntry
	shutdownCh chan struct{}
	once       sync.Once

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewAuditManager(workerCount, batchSize int, timeout time.Duration, logger *zap.Logger) *AuditManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditManager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		logger:      logger.Named("audit"),
		inputChan:   make(chan AuditLogEntry, workerCount*batchSize*2),
		batchChan:   make(chan []AuditLogEntry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.logger.Debug("starting audit manager", zap.Int("workers", m.workerCount))
	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(i)
	}
}

// Shutdown stops accepting entries, flushes what is buffered and waits for
// the workers until ctx expires.
func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Debug("audit manager stopped")
		case <-ctx.Done():
			m.logger.Warn("audit manager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

func (m *AuditManager) LogEntry(ctx context.Context, entry AuditLogEntry) {
	m.updatePendingCount(1)

	select {
	case <-m.shutdownCh:
		m.emergencyLog(entry)
		return
	default:
	}

	select {
	case m.inputChan <- entry:
	case <-m.shutdownCh:
		m.emergencyLog(entry)
	case <-ctx.Done():
		m.emergencyLog(entry)
	}
}

func (m *AuditManager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}

func (m *AuditManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []AuditLogEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timeoutC = nil
	}

	defer func() {
		stopTimer()
	drain:
		for {
			select {
			case entry := <-m.inputChan:
				batch = append(batch, entry)
			default:
				break drain
			}
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				stopTimer()
				m.dispatchBatch(batch)
				batch = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			timeoutC = nil
			m.dispatchBatch(batch)
			batch = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditLogEntry) {
	batchCopy := make([]AuditLogEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.writeBatch(-1, batchCopy)
	}
}

// runWorker drains batches until the aggregator closes the channel.
func (m *AuditManager) runWorker(id int) {
	defer m.wg.Done()
	for batch := range m.batchChan {
		m.writeBatch(id, batch)
	}
}

func (m *AuditManager) emergencyLog(entry AuditLogEntry) {
	m.logger.Warn("audit entry written directly", entry.fields()...)
	m.updatePendingCount(-1)
}

func (m *AuditManager) writeBatch(workerID int, batch []AuditLogEntry) {
	for _, entry := range batch {
		m.logger.Info("request", append(entry.fields(), zap.Int("worker", workerID))...)
	}
	m.updatePendingCount(-len(batch))
}

func (m *AuditManager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}
