package tracking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
)

type LocationFetcher interface {
	ListBusLocations(ctx context.Context) ([]models.BusLocation, error)
}

// Snapshot is the tracker state handed to readers.
type Snapshot struct {
	BusIDs    []string                      `json:"busIds"`
	Locations map[string]models.BusLocation `json:"locations"`
	UpdatedAt time.Time                     `json:"updatedAt"`
	LastError string                        `json:"lastError,omitempty"`
}

// BusTracker keeps the latest locations of a fixed set of buses. Each
// refresh replaces the whole map with whatever its response held; with
// overlapping ticks the response that lands last wins.
type BusTracker struct {
	ids     map[string]struct{}
	idList  []string
	fetcher LocationFetcher
	metrics *metrics.Collector
	sched   *Scheduler

	mu        sync.RWMutex
	locations map[string]models.BusLocation
	updatedAt time.Time
	lastErr   error
}

func NewBusTracker(fetcher LocationFetcher, ids []string, interval time.Duration, m *metrics.Collector) *BusTracker {
	t := &BusTracker{
		ids:       make(map[string]struct{}, len(ids)),
		idList:    append([]string(nil), ids...),
		fetcher:   fetcher,
		metrics:   m,
		locations: map[string]models.BusLocation{},
	}
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
	t.sched = NewScheduler(interval, func(ctx context.Context) {
		if err := t.Refresh(ctx); err != nil {
			log.Printf("[TRACKING] poll buses=%v error: %v", t.idList, err)
		}
	})
	return t
}

// Refresh fetches all bus locations once and keeps the tracked ones.
func (t *BusTracker) Refresh(ctx context.Context) error {
	start := time.Now()
	all, err := t.fetcher.ListBusLocations(ctx)
	t.metrics.PollObserved(time.Since(start), err)
	if err != nil {
		t.mu.Lock()
		t.lastErr = err
		t.mu.Unlock()
		return err
	}

	next := make(map[string]models.BusLocation, len(t.ids))
	for _, loc := range all {
		if _, ok := t.ids[loc.BusID]; ok {
			next[loc.BusID] = loc
		}
	}

	t.mu.Lock()
	t.locations = next
	t.updatedAt = time.Now().UTC()
	t.lastErr = nil
	t.mu.Unlock()
	return nil
}

func (t *BusTracker) Start(ctx context.Context) bool { return t.sched.Start(ctx) }

func (t *BusTracker) Stop() { t.sched.Stop() }

// Wait blocks until in-flight refreshes finish.
func (t *BusTracker) Wait() { t.sched.Wait() }

func (t *BusTracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	locs := make(map[string]models.BusLocation, len(t.locations))
	for k, v := range t.locations {
		locs[k] = v
	}
	snap := Snapshot{
		BusIDs:    append([]string(nil), t.idList...),
		Locations: locs,
		UpdatedAt: t.updatedAt,
	}
	if t.lastErr != nil {
		snap.LastError = t.lastErr.Error()
	}
	return snap
}
