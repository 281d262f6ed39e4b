package location

import (
	"context"
	"errors"
	"testing"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

type fakeUpdater struct {
	got []models.BusLocation
	err error
}

func (f *fakeUpdater) UpdateBusLocation(_ context.Context, loc models.BusLocation) error {
	f.got = append(f.got, loc)
	return f.err
}

type fakeJournal struct {
	got []models.BusLocation
}

func (f *fakeJournal) InsertLocation(_ context.Context, loc models.BusLocation) error {
	f.got = append(f.got, loc)
	return nil
}

func TestForwarder_Handle(t *testing.T) {
	up := &fakeUpdater{}
	j := &fakeJournal{}
	f := &Forwarder{Updater: up, Journal: j}

	f.Handle(Sample{BusID: "b1", Latitude: 3, Longitude: 4})
	assert.Len(t, up.got, 1)
	assert.Len(t, j.got, 1)
	assert.Equal(t, 3.0, up.got[0].Latitude)
}

func TestForwarder_SkipsSampleWithoutBus(t *testing.T) {
	up := &fakeUpdater{}
	(&Forwarder{Updater: up}).Handle(Sample{DeviceID: "phone"})
	assert.Empty(t, up.got)
}

func TestForwarder_UpstreamErrorStillJournals(t *testing.T) {
	up := &fakeUpdater{err: errors.New("502")}
	j := &fakeJournal{}
	(&Forwarder{Updater: up, Journal: j}).Handle(Sample{BusID: "b1"})
	assert.Len(t, j.got, 1)
}
