package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transcontinental/portal/internal/repository"
)

type stubLoader struct {
	shipments []*repository.Shipment
	err       error
	status    string
}

func (l *stubLoader) ListByStatus(_ context.Context, status string) ([]*repository.Shipment, error) {
	l.status = status
	return l.shipments, l.err
}

func pending(id string, createdAt time.Time) *repository.Shipment {
	return &repository.Shipment{
		ID:                id,
		Status:            statusUnderReview,
		BillOfLadingFiles: []string{"/uploads/" + id + ".pdf"},
		CreatedAt:         createdAt,
	}
}

func TestPendingCache_LoadInitialData(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("loads under review shipments", func(t *testing.T) {
		loader := &stubLoader{shipments: []*repository.Shipment{pending("a", base), pending("b", base.Add(time.Hour))}}
		c := NewPendingCache(loader, nil)

		require.NoError(t, c.LoadInitialData(context.Background()))

		assert.Equal(t, statusUnderReview, loader.status)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("loader error", func(t *testing.T) {
		c := NewPendingCache(&stubLoader{err: errors.New("db down")}, nil)

		assert.Error(t, c.LoadInitialData(context.Background()))
		assert.Zero(t, c.Len())
	})
}

func TestPendingCache_SetAndDelete(t *testing.T) {
	c := NewPendingCache(&stubLoader{}, nil)
	s := pending("a", time.Now())

	c.Set(s)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, s.ID, got.ID)

	got.BillOfLadingFiles[0] = "mutated"
	again, _ := c.Get("a")
	assert.Equal(t, "/uploads/a.pdf", again.BillOfLadingFiles[0])

	decided := *s
	decided.Status = "ACCEPTED"
	c.Set(&decided)
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Set(s)
	c.Delete("a")
	c.Delete("missing")
	assert.Zero(t, c.Len())
}

func TestPendingCache_ListNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := NewPendingCache(&stubLoader{}, nil)
	c.Set(pending("old", base))
	c.Set(pending("new", base.Add(2*time.Hour)))
	c.Set(pending("mid", base.Add(time.Hour)))

	list := c.List()

	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestPendingCache_Concurrent(t *testing.T) {
	c := NewPendingCache(&stubLoader{}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			c.Set(pending(id, time.Now()))
			_ = c.List()
			c.Delete(id)
		}()
	}
	wg.Wait()
	assert.Zero(t, c.Len())
}

func TestPendingCache_SetAfterDelete(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewPendingCache(&stubLoader{}, nil)
	c.timeNow = func() time.Time { return now }

	// A decision committed after the creation but updated the cache first.
	c.Delete("a")
	c.Set(pending("a", now))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Empty(t, c.List())

	t.Run("loader does not revive removed ids", func(t *testing.T) {
		loader := &stubLoader{shipments: []*repository.Shipment{pending("a", now), pending("b", now)}}
		c.repo = loader

		require.NoError(t, c.LoadInitialData(context.Background()))

		_, ok := c.Get("a")
		assert.False(t, ok)
		_, ok = c.Get("b")
		assert.True(t, ok)
	})
}

func TestPendingCache_TombstonesExpire(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewPendingCache(&stubLoader{}, nil)
	c.timeNow = func() time.Time { return now }

	c.Delete("a")
	now = now.Add(tombstoneTTL + time.Second)
	c.Delete("b")

	c.mu.RLock()
	_, kept := c.removed["a"]
	c.mu.RUnlock()
	assert.False(t, kept)

	c.Set(pending("a", now))
	_, ok := c.Get("a")
	assert.True(t, ok)
}
