package tracking

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndRepeats(t *testing.T) {
	var n atomic.Int32
	s := NewScheduler(10*time.Millisecond, func(context.Context) { n.Add(1) })

	require.True(t, s.Start(context.Background()))
	assert.False(t, s.Start(context.Background()), "second Start must be a no-op")

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, 2*time.Millisecond)
	s.Stop()
	s.Wait()
	assert.False(t, s.Running())

	after := n.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, n.Load(), "no runs after Stop")
	s.Stop()
}

func TestScheduler_StopDoesNotCancelInFlightRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var ctxErr atomic.Value

	s := NewScheduler(time.Hour, func(ctx context.Context) {
		close(started)
		<-release
		ctxErr.Store(ctx.Err() == nil)
	})
	s.Start(context.Background())
	<-started
	s.Stop()
	close(release)
	s.Wait()

	assert.Equal(t, true, ctxErr.Load())
}

func TestScheduler_TicksOverlap(t *testing.T) {
	var running, maxRunning atomic.Int32
	s := NewScheduler(5*time.Millisecond, func(context.Context) {
		cur := running.Add(1)
		for {
			prev := maxRunning.Load()
			if cur <= prev || maxRunning.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		running.Add(-1)
	})
	s.Start(context.Background())
	require.Eventually(t, func() bool { return maxRunning.Load() >= 2 }, time.Second, 2*time.Millisecond)
	s.Stop()
	s.Wait()
}
