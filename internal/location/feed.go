package location

import (
	"context"
	"log"
	"sync"
	"time"
)

const feedBuffer = 64

type feedEvent struct {
	sample Sample
	err    error
}

// Feed is an in-process Source fed by Push; it is also a Sink so HTTP
// ingest can write to it directly when no message bus is configured.
type Feed struct {
	mu     sync.Mutex
	last   *Sample
	nextID int
	subs   map[int]chan feedEvent
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]chan feedEvent)}
}

// Push records s as the latest sample and fans it out to watchers.
// Slow watchers drop samples rather than block the producer.
func (f *Feed) Push(s Sample) {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	f.mu.Lock()
	cp := s
	f.last = &cp
	f.broadcastLocked(feedEvent{sample: s})
	f.mu.Unlock()
}

// Fail reports a non-fatal error to watchers.
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	f.broadcastLocked(feedEvent{err: err})
	f.mu.Unlock()
}

func (f *Feed) Ingest(_ context.Context, s Sample) error {
	f.Push(s)
	return nil
}

func (f *Feed) broadcastLocked(ev feedEvent) {
	for id, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("[LOCATION] feed watcher %d full, dropping event", id)
		}
	}
}

func (f *Feed) subscribe() (int, chan feedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ch := make(chan feedEvent, feedBuffer)
	f.subs[f.nextID] = ch
	return f.nextID, ch
}

func (f *Feed) unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, id)
}

// Current returns the latest sample, or waits for the next one.
func (f *Feed) Current(ctx context.Context) (Sample, error) {
	f.mu.Lock()
	if f.last != nil {
		s := *f.last
		f.mu.Unlock()
		return s, nil
	}
	f.mu.Unlock()

	id, ch := f.subscribe()
	defer f.unsubscribe(id)
	for {
		select {
		case <-ctx.Done():
			return Sample{}, ctx.Err()
		case ev := <-ch:
			if ev.err != nil {
				return Sample{}, ev.err
			}
			return ev.sample, nil
		}
	}
}

func (f *Feed) Watch(ctx context.Context, onSample func(Sample), onError func(error)) error {
	id, ch := f.subscribe()
	defer f.unsubscribe(id)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-ch:
			if ev.err != nil {
				onError(ev.err)
				continue
			}
			onSample(ev.sample)
		}
	}
}

// Subscribers reports active watch/current callers.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
