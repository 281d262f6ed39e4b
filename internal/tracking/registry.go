package tracking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"
)

// DefaultMaxTrackers bounds how many distinct id sets are polled at once.
const DefaultMaxTrackers = 64

type registryEntry struct {
	tracker  *BusTracker
	lastRead time.Time
}

// Registry shares one BusTracker per distinct set of bus ids and stops
// trackers nobody has read for idleTTL.
type Registry struct {
	fetcher     LocationFetcher
	interval    time.Duration
	idleTTL     time.Duration
	maxTrackers int
	metrics     *metrics.Collector
	now         func() time.Time

	mu       sync.Mutex
	trackers map[string]*registryEntry
	sweeper  *Scheduler
}

func NewRegistry(fetcher LocationFetcher, interval, idleTTL time.Duration, m *metrics.Collector) *Registry {
	r := &Registry{
		fetcher:     fetcher,
		interval:    interval,
		idleTTL:     idleTTL,
		maxTrackers: DefaultMaxTrackers,
		metrics:     m,
		now:         time.Now,
		trackers:    map[string]*registryEntry{},
	}
	r.sweeper = NewScheduler(idleTTL/2+time.Second, func(context.Context) { r.Sweep() })
	return r
}

// SetMaxTrackers changes the cap on distinct id sets; n <= 0 removes it.
func (r *Registry) SetMaxTrackers(n int) {
	r.mu.Lock()
	r.maxTrackers = n
	r.mu.Unlock()
}

// Start launches the idle sweeper.
func (r *Registry) Start(ctx context.Context) { r.sweeper.Start(ctx) }

// Snapshot returns the state for ids, starting a tracker on first use.
// A new tracker is refreshed once before returning so the first read is
// not empty. When the registry is full and nothing is idle, a new id set
// gets a LimitError.
func (r *Registry) Snapshot(ctx context.Context, ids []string) (Snapshot, error) {
	key := utils.IDSetKey(ids)

	r.mu.Lock()
	e, ok := r.trackers[key]
	if ok {
		e.lastRead = r.now()
		r.mu.Unlock()
		return e.tracker.Snapshot(), nil
	}
	if r.maxTrackers > 0 && len(r.trackers) >= r.maxTrackers {
		r.sweepLocked()
		if len(r.trackers) >= r.maxTrackers {
			r.mu.Unlock()
			return Snapshot{}, domain.LimitError{Resource: "tracked bus sets", Limit: r.maxTrackers}
		}
	}
	t := NewBusTracker(r.fetcher, ids, r.interval, r.metrics)
	r.trackers[key] = &registryEntry{tracker: t, lastRead: r.now()}
	r.metrics.SetActiveTrackers(len(r.trackers))
	r.mu.Unlock()

	if err := t.Refresh(ctx); err != nil {
		log.Printf("[TRACKING] initial poll buses=%v error: %v", ids, err)
	}
	t.Start(context.Background())
	return t.Snapshot(), nil
}

// Sweep stops and forgets idle trackers.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	now := r.now()
	stopped := 0
	for key, e := range r.trackers {
		if now.Sub(e.lastRead) > r.idleTTL {
			e.tracker.Stop()
			delete(r.trackers, key)
			stopped++
		}
	}
	if stopped > 0 {
		log.Printf("[TRACKING] stopped %d idle trackers", stopped)
		r.metrics.SetActiveTrackers(len(r.trackers))
	}
	return stopped
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

// Close stops the sweeper and every tracker.
func (r *Registry) Close() {
	r.sweeper.Stop()
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.trackers {
		e.tracker.Stop()
		delete(r.trackers, key)
	}
	r.metrics.SetActiveTrackers(0)
}
