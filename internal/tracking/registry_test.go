package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SharesTrackerPerIDSet(t *testing.T) {
	fb := &fakeBackend{}
	fb.setLocations([]models.BusLocation{loc("b1", time.Now()), loc("b2", time.Now())})
	r := NewRegistry(fb, time.Hour, time.Minute, nil)
	defer r.Close()

	snap, err := r.Snapshot(context.Background(), []string{"b2", "b1"})
	require.NoError(t, err)
	assert.Len(t, snap.Locations, 2, "first read is refreshed synchronously")

	r.Snapshot(context.Background(), []string{"b1", "b2"})
	assert.Equal(t, 1, r.Len())

	r.Snapshot(context.Background(), []string{"b1"})
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SweepStopsIdleTrackers(t *testing.T) {
	fb := &fakeBackend{}
	r := NewRegistry(fb, time.Hour, time.Minute, nil)
	defer r.Close()

	now := time.Now()
	r.now = func() time.Time { return now }
	r.Snapshot(context.Background(), []string{"b1"})
	r.Snapshot(context.Background(), []string{"b2"})

	now = now.Add(50 * time.Second)
	r.Snapshot(context.Background(), []string{"b2"})

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_CapsDistinctIDSets(t *testing.T) {
	fb := &fakeBackend{}
	r := NewRegistry(fb, time.Hour, time.Minute, nil)
	defer r.Close()
	r.SetMaxTrackers(2)

	now := time.Now()
	r.now = func() time.Time { return now }

	_, err := r.Snapshot(context.Background(), []string{"b1"})
	require.NoError(t, err)
	_, err = r.Snapshot(context.Background(), []string{"b2"})
	require.NoError(t, err)

	_, err = r.Snapshot(context.Background(), []string{"b3"})
	require.Error(t, err)
	assert.True(t, domain.IsLimit(err))
	assert.Equal(t, 2, r.Len())

	// known sets are still served at the cap
	_, err = r.Snapshot(context.Background(), []string{"b1"})
	assert.NoError(t, err)

	// idle sets make room for new ones
	now = now.Add(2 * time.Minute)
	_, err = r.Snapshot(context.Background(), []string{"b3"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}
