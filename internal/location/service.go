package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
)

type WatchID uint64

const (
	// DefaultMaxAge is how old a bus's last sample may be before
	// BusPosition refuses it.
	DefaultMaxAge = 2 * time.Minute

	restartDelay = time.Second
)

type subscriber struct {
	id WatchID
	cb func(Sample)
}

// Service multiplexes one continuous watch on a Source across any number
// of callbacks. The watch starts with the first subscriber and stops when
// the last one leaves. It also remembers the newest sample per bus seen
// on that watch.
type Service struct {
	source       Source
	metrics      *metrics.Collector
	maxAge       time.Duration
	restartDelay time.Duration
	now          func() time.Time

	mu     sync.Mutex
	nextID WatchID
	subs   []subscriber
	cancel context.CancelFunc
	latest map[string]Sample
}

func NewService(source Source, m *metrics.Collector) *Service {
	return &Service{
		source:       source,
		metrics:      m,
		maxAge:       DefaultMaxAge,
		restartDelay: restartDelay,
		now:          time.Now,
		latest:       map[string]Sample{},
	}
}

// SetMaxAge changes the freshness window used by BusPosition.
func (s *Service) SetMaxAge(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.maxAge = d
	s.mu.Unlock()
}

// GetCurrentPosition resolves once with a sample.
func (s *Service) GetCurrentPosition(ctx context.Context) (Sample, error) {
	if s == nil || s.source == nil {
		return Sample{}, domain.ErrGeolocationUnavailable
	}
	sample, err := s.source.Current(ctx)
	if err == nil {
		return sample, nil
	}
	if domain.IsGeolocation(err) {
		return Sample{}, err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Sample{}, domain.GeolocationError{Code: domain.GeoTimeout, Err: err}
	}
	return Sample{}, domain.GeolocationError{Code: domain.GeoPositionUnavailable, Err: err}
}

// BusPosition returns the newest sample reported for busID. It only knows
// buses seen while the watch is running, and rejects samples older than
// the freshness window.
func (s *Service) BusPosition(_ context.Context, busID string) (Sample, error) {
	if s == nil || s.source == nil {
		return Sample{}, domain.ErrGeolocationUnavailable
	}
	busID = strings.TrimSpace(busID)
	if busID == "" {
		return Sample{}, domain.ErrGeolocationUnavailable
	}

	s.mu.Lock()
	sample, ok := s.latest[busID]
	maxAge := s.maxAge
	s.mu.Unlock()

	if !ok {
		return Sample{}, domain.GeolocationError{Code: domain.GeoPositionUnavailable, Err: fmt.Errorf("no position for bus %s", busID)}
	}
	if age := s.now().Sub(sample.Timestamp); age > maxAge {
		return Sample{}, domain.GeolocationError{Code: domain.GeoTimeout, Err: fmt.Errorf("position for bus %s is %s old", busID, age.Round(time.Second))}
	}
	return sample, nil
}

// StartWatching registers cb on the shared watch.
func (s *Service) StartWatching(cb func(Sample)) (WatchID, error) {
	if s == nil || s.source == nil {
		return 0, domain.ErrGeolocationUnavailable
	}
	if cb == nil {
		return 0, domain.ValidationError{Field: "callback", Msg: "callback is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, cb: cb})
	s.metrics.SetWatchers(len(s.subs))

	if s.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.run(ctx)
	}
	return id, nil
}

// StopWatching unregisters a callback; false if id was unknown.
func (s *Service) StopWatching(id WatchID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sub := range s.subs {
		if sub.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
	s.metrics.SetWatchers(len(s.subs))

	if len(s.subs) == 0 && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// Watchers returns how many callbacks are registered.
func (s *Service) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close drops every subscriber and stops the watch.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = nil
	s.metrics.SetWatchers(0)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Service) run(ctx context.Context) {
	onSample := func(sample Sample) {
		if ctx.Err() != nil {
			return
		}
		s.dispatch(sample)
	}
	onError := func(err error) {
		log.Printf("[LOCATION] watch error: %v", err)
	}

	// A source that gives up is restarted for as long as anyone is subscribed.
	for {
		err := s.source.Watch(ctx, onSample, onError)
		if ctx.Err() != nil {
			return
		}
		log.Printf("[LOCATION] watch stopped: %v, restarting in %s", err, s.restartDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.restartDelay):
		}
	}
}

func (s *Service) dispatch(sample Sample) {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = s.now().UTC()
	}

	s.mu.Lock()
	if id := strings.TrimSpace(sample.BusID); id != "" {
		if prev, ok := s.latest[id]; !ok || !sample.Timestamp.Before(prev.Timestamp) {
			s.latest[id] = sample
		}
	}
	cbs := make([]func(Sample), 0, len(s.subs))
	for _, sub := range s.subs {
		cbs = append(cbs, sub.cb)
	}
	s.mu.Unlock()

	s.metrics.SampleDelivered()
	for _, cb := range cbs {
		cb(sample)
	}
}
