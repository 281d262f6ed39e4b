package tracking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

// fakeBackend counts calls per endpoint and serves canned data.
type fakeBackend struct {
	mu        sync.Mutex
	locations []models.BusLocation
	fail      bool

	locationCalls atomic.Int32
	routeCalls    atomic.Int32
	busCalls      atomic.Int32
	stationCalls  atomic.Int32
}

func (f *fakeBackend) setLocations(locs []models.BusLocation) {
	f.mu.Lock()
	f.locations = locs
	f.mu.Unlock()
}

func (f *fakeBackend) ListBusLocations(context.Context) ([]models.BusLocation, error) {
	f.locationCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("backend down")
	}
	return append([]models.BusLocation(nil), f.locations...), nil
}

func (f *fakeBackend) ListRoutes(context.Context) ([]models.Route, error) {
	f.routeCalls.Add(1)
	return []models.Route{{ID: "r1", Start: "A", End: "B", Fare: 20}}, nil
}

func (f *fakeBackend) ListBuses(context.Context) ([]models.Bus, error) {
	f.busCalls.Add(1)
	return []models.Bus{{ID: "b1", Name: "Bus 1"}, {ID: "b2", Name: "Bus 2"}}, nil
}

func (f *fakeBackend) ListStations(context.Context) ([]models.Station, error) {
	f.stationCalls.Add(1)
	return []models.Station{{ID: "s1"}}, nil
}

func (f *fakeBackend) totalCalls() int32 {
	return f.locationCalls.Load() + f.routeCalls.Load() + f.busCalls.Load() + f.stationCalls.Load()
}

func loc(id string, ts time.Time) models.BusLocation {
	return models.BusLocation{BusID: id, Latitude: 1, Longitude: 2, Timestamp: ts}
}
