package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/backend"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/maps"
)

// fakeBackend records every call so tests can assert on network use.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	active    *models.Ride
	activeErr error
	started   models.Ride
	ended     models.RideCompletion
	endErr    error

	trip    models.Trip
	tripErr error

	pass    models.Pass
	passes  []models.Pass
	passErr error
	routes  []models.Route

	wallet    models.Wallet
	ticket    models.Ticket
	ticketReq models.Ticket

	notifications []models.Notification
	notifyErr     error
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) ActiveRide(_ context.Context, userID string) (*models.Ride, error) {
	f.record("ActiveRide")
	return f.active, f.activeErr
}

func (f *fakeBackend) StartRide(_ context.Context, userID, busID string, at models.Waypoint) (models.Ride, error) {
	f.record("StartRide")
	f.started = models.Ride{ID: "ride-1", UserID: userID, BusID: busID, Start: at, Active: true}
	return f.started, nil
}

func (f *fakeBackend) EndRide(_ context.Context, rideID string, done models.RideCompletion) (models.Ride, error) {
	f.record("EndRide")
	f.ended = done
	if f.endErr != nil {
		return models.Ride{}, f.endErr
	}
	r := *f.active
	r.Active = false
	r.End = &done.End
	r.DistanceKm = done.DistanceKm
	r.Fare = done.Fare
	r.DurationMin = done.DurationMin
	return r, nil
}

func (f *fakeBackend) TriggerNotification(_ context.Context, n models.Notification) error {
	f.record("TriggerNotification")
	f.notifications = append(f.notifications, n)
	return f.notifyErr
}

func (f *fakeBackend) StartTrip(_ context.Context, userID string, at models.Waypoint) (models.Trip, error) {
	f.record("StartTrip")
	return models.Trip{ID: "trip-1", UserID: userID, Start: at, Active: true}, nil
}

func (f *fakeBackend) GetTrip(context.Context, string) (models.Trip, error) {
	f.record("GetTrip")
	return f.trip, f.tripErr
}

func (f *fakeBackend) EndTrip(_ context.Context, tripID string, done models.RideCompletion) (models.Trip, error) {
	f.record("EndTrip")
	f.ended = done
	t := f.trip
	t.Active = false
	t.Fare = done.Fare
	return t, nil
}

func (f *fakeBackend) TripHistory(context.Context, string) ([]models.Trip, error) {
	f.record("TripHistory")
	return []models.Trip{f.trip}, nil
}

func (f *fakeBackend) RideHistory(context.Context, string) ([]models.Ride, error) {
	f.record("RideHistory")
	return nil, &backend.APIError{Status: 500, Message: "boom"}
}

func (f *fakeBackend) GetPass(context.Context, string) (models.Pass, error) {
	f.record("GetPass")
	return f.pass, f.passErr
}

func (f *fakeBackend) ListPasses(context.Context, string) ([]models.Pass, error) {
	f.record("ListPasses")
	return f.passes, nil
}

func (f *fakeBackend) ListRoutes(context.Context) ([]models.Route, error) {
	f.record("ListRoutes")
	return f.routes, nil
}

func (f *fakeBackend) GetWallet(context.Context, string) (models.Wallet, error) {
	f.record("GetWallet")
	return f.wallet, nil
}

func (f *fakeBackend) CreateTicket(_ context.Context, t models.Ticket) (models.Ticket, error) {
	f.record("CreateTicket")
	f.ticketReq = t
	t.ID = "ticket-1"
	return t, nil
}

type fakeJournal struct {
	records []models.ScanRecord
	err     error
}

func (j *fakeJournal) RecordScan(_ context.Context, rec *models.ScanRecord) error {
	rec.ID = "scan-1"
	j.records = append(j.records, *rec)
	return j.err
}

type fakeRoutes struct {
	route maps.Route
	err   error
	calls int
}

func (r *fakeRoutes) DrivingRoute(context.Context, domain.Coordinates, domain.Coordinates) (maps.Route, error) {
	r.calls++
	return r.route, r.err
}

type fakeLocator struct {
	byBus map[string]location.Sample
	err   error
}

func (l fakeLocator) BusPosition(_ context.Context, busID string) (location.Sample, error) {
	if l.err != nil {
		return location.Sample{}, l.err
	}
	s, ok := l.byBus[busID]
	if !ok {
		return location.Sample{}, domain.GeolocationError{Code: domain.GeoPositionUnavailable}
	}
	return s, nil
}

type fakeConcessions struct {
	records map[string]models.ConcessionVerification
	err     error
	calls   int
}

func (f *fakeConcessions) GetConcession(_ context.Context, userID string) (models.ConcessionVerification, error) {
	f.calls++
	if f.err != nil {
		return models.ConcessionVerification{}, f.err
	}
	return f.records[userID], nil
}

var errTransport = errors.New("dial tcp: connection refused")
