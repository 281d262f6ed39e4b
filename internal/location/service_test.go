package location

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *recorder) add(s Sample) {
	r.mu.Lock()
	r.samples = append(r.samples, s)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

func waitSubscribers(t *testing.T, f *Feed, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return f.Subscribers() == n }, time.Second, 5*time.Millisecond)
}

// whenSubscribed runs fn once someone is listening on f.
func whenSubscribed(f *Feed, fn func()) {
	go func() {
		for f.Subscribers() == 0 {
			time.Sleep(time.Millisecond)
		}
		fn()
	}()
}

func TestGetCurrentPosition_NoSource(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.GetCurrentPosition(context.Background())
	assert.ErrorIs(t, err, domain.ErrGeolocationUnavailable)

	_, err = svc.StartWatching(func(Sample) {})
	assert.ErrorIs(t, err, domain.ErrGeolocationUnavailable)
}

func TestGetCurrentPosition_LatestSample(t *testing.T) {
	feed := NewFeed()
	acc := 5.0
	feed.Push(Sample{BusID: "b1", Latitude: 1, Longitude: 2, Accuracy: &acc})

	got, err := NewService(feed, nil).GetCurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b1", got.BusID)
	require.NotNil(t, got.Accuracy)
	assert.Equal(t, 5.0, *got.Accuracy)
	assert.False(t, got.Timestamp.IsZero())
}

func TestGetCurrentPosition_WaitsForNextSample(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)

	whenSubscribed(feed, func() { feed.Push(Sample{BusID: "b2"}) })

	got, err := svc.GetCurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b2", got.BusID)
}

func TestGetCurrentPosition_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewService(NewFeed(), nil).GetCurrentPosition(ctx)
	var geoErr domain.GeolocationError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, domain.GeoTimeout, geoErr.Code)
}

func TestGetCurrentPosition_SourceError(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)
	whenSubscribed(feed, func() { feed.Fail(errors.New("gps lost")) })

	_, err := svc.GetCurrentPosition(context.Background())
	var geoErr domain.GeolocationError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, domain.GeoPositionUnavailable, geoErr.Code)
}

func TestWatch_CallbacksShareOneSubscription(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)

	var a, b recorder
	idA, err := svc.StartWatching(a.add)
	require.NoError(t, err)
	idB, err := svc.StartWatching(b.add)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)

	waitSubscribers(t, feed, 1)
	assert.Equal(t, 2, svc.Watchers())

	feed.Push(Sample{BusID: "b1"})
	require.Eventually(t, func() bool { return a.count() == 1 && b.count() == 1 }, time.Second, 5*time.Millisecond)

	// First unregister keeps the watch alive for the remaining callback.
	assert.True(t, svc.StopWatching(idA))
	assert.Equal(t, 1, feed.Subscribers())

	feed.Push(Sample{BusID: "b1"})
	require.Eventually(t, func() bool { return b.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, a.count())

	// Last unregister tears the watch down.
	assert.True(t, svc.StopWatching(idB))
	waitSubscribers(t, feed, 0)
	assert.False(t, svc.StopWatching(idB))
}

func TestWatch_RestartsAfterTeardown(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)

	id, err := svc.StartWatching(func(Sample) {})
	require.NoError(t, err)
	waitSubscribers(t, feed, 1)
	svc.StopWatching(id)
	waitSubscribers(t, feed, 0)

	var r recorder
	_, err = svc.StartWatching(r.add)
	require.NoError(t, err)
	waitSubscribers(t, feed, 1)
	feed.Push(Sample{BusID: "b9"})
	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond)
	svc.Close()
	waitSubscribers(t, feed, 0)
}

func TestWatch_ErrorsDoNotStopWatching(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)

	var r recorder
	_, err := svc.StartWatching(r.add)
	require.NoError(t, err)
	waitSubscribers(t, feed, 1)

	feed.Fail(errors.New("signal lost"))
	feed.Push(Sample{BusID: "b1"})
	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond)
	svc.Close()
}

func TestStartWatching_NilCallback(t *testing.T) {
	_, err := NewService(NewFeed(), nil).StartWatching(nil)
	assert.True(t, domain.IsValidation(err))
}

func TestBusPosition_PerBusAndFresh(t *testing.T) {
	feed := NewFeed()
	svc := NewService(feed, nil)
	defer svc.Close()

	_, err := svc.StartWatching(func(Sample) {})
	require.NoError(t, err)
	waitSubscribers(t, feed, 1)

	now := time.Now().UTC()
	feed.Push(Sample{BusID: "bus-A", Latitude: 12.97, Longitude: 77.59, Timestamp: now})
	feed.Push(Sample{BusID: "bus-B", Latitude: 13.87, Longitude: 77.59, Timestamp: now})
	feed.Push(Sample{BusID: "bus-A", Latitude: 1, Longitude: 1, Timestamp: now.Add(-time.Second)})
	feed.Push(Sample{BusID: "bus-C", Latitude: 5, Longitude: 5, Timestamp: now.Add(-10 * time.Minute)})

	// bus-C is pushed last; once it is known as stale every sample is in.
	var geoErr domain.GeolocationError
	require.Eventually(t, func() bool {
		_, err := svc.BusPosition(context.Background(), "bus-C")
		return errors.As(err, &geoErr) && geoErr.Code == domain.GeoTimeout
	}, time.Second, 5*time.Millisecond)

	got, err := svc.BusPosition(context.Background(), "bus-A")
	require.NoError(t, err)
	assert.Equal(t, 12.97, got.Latitude, "an older report does not replace a newer one")

	_, err = svc.BusPosition(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrGeolocationUnavailable)

	got, err = svc.BusPosition(context.Background(), "bus-B")
	require.NoError(t, err)
	assert.Equal(t, 13.87, got.Latitude)

	_, err = svc.BusPosition(context.Background(), "bus-Z")
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, domain.GeoPositionUnavailable, geoErr.Code)
}

// failOnceSource fails its first Watch before delegating to a Feed.
type failOnceSource struct {
	*Feed
	watches atomic.Int32
}

func (f *failOnceSource) Watch(ctx context.Context, onSample func(Sample), onError func(error)) error {
	if f.watches.Add(1) == 1 {
		return errors.New("subscription closed")
	}
	return f.Feed.Watch(ctx, onSample, onError)
}

func TestWatch_RestartsWhenSourceGivesUp(t *testing.T) {
	src := &failOnceSource{Feed: NewFeed()}
	svc := NewService(src, nil)
	svc.restartDelay = 5 * time.Millisecond
	defer svc.Close()

	var r recorder
	_, err := svc.StartWatching(r.add)
	require.NoError(t, err)

	waitSubscribers(t, src.Feed, 1)
	assert.EqualValues(t, 2, src.watches.Load())

	src.Push(Sample{BusID: "b1"})
	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond)
}
