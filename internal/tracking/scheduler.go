package tracking

import (
	"context"
	"sync"
	"time"
)

// Task is one scheduled run.
type Task func(ctx context.Context)

// Scheduler runs a Task immediately and then every interval until Stop.
// Every tick starts its own run: runs are neither coalesced nor cancelled,
// so a slow run may overlap (and finish after) a later one. Stop only ends
// the ticking; runs already started complete on their own.
type Scheduler struct {
	interval time.Duration
	task     Task

	mu     sync.Mutex
	cancel context.CancelFunc
	runs   sync.WaitGroup
}

func NewScheduler(interval time.Duration, task Task) *Scheduler {
	return &Scheduler{interval: interval, task: task}
}

// Start begins ticking; false if already running.
func (s *Scheduler) Start(parent context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.runs.Add(1)
	go s.loop(ctx)
	return true
}

// Stop ends the ticking; safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Wait blocks until the loop has exited and every started run has
// returned. Call it after Stop.
func (s *Scheduler) Wait() {
	s.runs.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.runs.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.fire(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx := context.WithoutCancel(ctx)
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.task(runCtx)
	}()
}
