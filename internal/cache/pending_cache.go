package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/metrics"
	"github.com/transcontinental/portal/internal/repository"
)

const (
	statusUnderReview = "UNDER_REVIEW"

	// tombstoneTTL bounds how long a removed id is refused by Set.
	tombstoneTTL = 10 * time.Minute
)

type ShipmentLoader interface {
	ListByStatus(ctx context.Context, status string) ([]*repository.Shipment, error)
}

// PendingCache keeps the shipments waiting for an admin decision.
//
// Writers update the cache after their transaction commits, so a creation can
// reach Set after the decision on the same shipment reached Delete. Removed ids
// are remembered for tombstoneTTL and never re-added in that window.
type PendingCache struct {
	mu      sync.RWMutex
	cache   map[string]*repository.Shipment
	removed map[string]time.Time
	repo    ShipmentLoader
	logger  *zap.Logger

	timeNow func() time.Time
}

func NewPendingCache(repo ShipmentLoader, logger *zap.Logger) *PendingCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingCache{
		cache:   make(map[string]*repository.Shipment),
		removed: make(map[string]time.Time),
		repo:    repo,
		logger:  logger,
		timeNow: time.Now,
	}
}

func (c *PendingCache) LoadInitialData(ctx context.Context) error {
	c.logger.Info("loading pending shipments into cache")
	shipments, err := c.repo.ListByStatus(ctx, statusUnderReview)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range shipments {
		if c.isRemoved(s.ID) {
			continue
		}
		c.cache[s.ID] = copyShipment(s)
	}
	metrics.PendingReviewCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("pending shipments loaded", zap.Int("count", len(c.cache)))
	return nil
}

func (c *PendingCache) Get(id string) (*repository.Shipment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, found := c.cache[id]
	if !found {
		return nil, false
	}
	return copyShipment(s), true
}

// Set stores a shipment that is under review and forgets any other.
func (c *PendingCache) Set(s *repository.Shipment) {
	if s.Status != statusUnderReview {
		c.Delete(s.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRemoved(s.ID) {
		c.logger.Debug("cache: skipped removed shipment", zap.String("shipment_id", s.ID))
		return
	}
	c.cache[s.ID] = copyShipment(s)
	metrics.PendingReviewCacheItems.Set(float64(len(c.cache)))
	c.logger.Debug("cache: set shipment", zap.String("shipment_id", s.ID))
}

func (c *PendingCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.timeNow()
	for removedID, at := range c.removed {
		if now.Sub(at) > tombstoneTTL {
			delete(c.removed, removedID)
		}
	}
	c.removed[id] = now

	if _, found := c.cache[id]; found {
		delete(c.cache, id)
		metrics.PendingReviewCacheItems.Set(float64(len(c.cache)))
		c.logger.Debug("cache: deleted shipment", zap.String("shipment_id", id))
	}
}

// List returns copies of the cached shipments, newest first.
func (c *PendingCache) List() []*repository.Shipment {
	c.mu.RLock()
	out := make([]*repository.Shipment, 0, len(c.cache))
	for _, s := range c.cache {
		out = append(out, copyShipment(s))
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (c *PendingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// isRemoved must be called with c.mu held.
func (c *PendingCache) isRemoved(id string) bool {
	at, found := c.removed[id]
	return found && c.timeNow().Sub(at) <= tombstoneTTL
}

func copyShipment(s *repository.Shipment) *repository.Shipment {
	cp := *s
	cp.BillOfLadingFiles = append([]string(nil), s.BillOfLadingFiles...)
	return &cp
}
