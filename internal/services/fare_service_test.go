package services

import (
	"context"
	"testing"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/maps"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mgRoad  = domain.Coordinates{Lat: 12.9756, Lng: 77.6066}
	airport = domain.Coordinates{Lat: 13.1986, Lng: 77.7066}
)

func TestFareService_UsesRealRouting(t *testing.T) {
	routes := &fakeRoutes{route: maps.Route{DistanceKm: 34.567, DurationMin: 52.34}}
	svc := NewFareService(routes, nil)

	est := svc.Estimate(context.Background(), mgRoad, airport)
	assert.True(t, est.UsedRealRouting)
	assert.Equal(t, 34.57, est.DistanceKm)
	assert.Equal(t, 52.3, est.DurationMin)
}

func TestFareService_FallsBackOnAnyFailure(t *testing.T) {
	routes := &fakeRoutes{err: errTransport}
	svc := NewFareService(routes, nil)

	est := svc.Estimate(context.Background(), mgRoad, airport)
	assert.False(t, est.UsedRealRouting)
	km := utils.RoundTo(utils.Haversine(mgRoad, airport), 2)
	assert.Equal(t, km, est.DistanceKm)
	assert.InDelta(t, km/30*60, est.DurationMin, 0.1)
	assert.Equal(t, 1, routes.calls, "no retries")
}

func TestFareService_NoAPIKeySkipsRouting(t *testing.T) {
	svc := NewFareService((*maps.Client)(nil), nil)
	est := svc.Estimate(context.Background(), mgRoad, mgRoad)
	assert.False(t, est.UsedRealRouting)
	assert.Zero(t, est.DistanceKm)
}

func TestFareService_CachesRoutedAnswers(t *testing.T) {
	routes := &fakeRoutes{route: maps.Route{DistanceKm: 10, DurationMin: 20}}
	svc := NewFareService(routes, nil)

	svc.Estimate(context.Background(), mgRoad, airport)
	svc.Estimate(context.Background(), mgRoad, airport)
	assert.Equal(t, 1, routes.calls)
}

func TestFareService_FallbackNotCached(t *testing.T) {
	routes := &fakeRoutes{err: errTransport}
	svc := NewFareService(routes, nil)

	svc.Estimate(context.Background(), mgRoad, airport)
	routes.err = nil
	routes.route = maps.Route{DistanceKm: 40, DurationMin: 60}
	est := svc.Estimate(context.Background(), mgRoad, airport)
	assert.True(t, est.UsedRealRouting)
	assert.Equal(t, 2, routes.calls)
}

func TestFareService_Quote(t *testing.T) {
	svc := NewFareService(&fakeRoutes{route: maps.Route{DistanceKm: 10, DurationMin: 15}}, nil)

	q, err := svc.Quote(context.Background(), mgRoad, airport, domain.ConcessionStudent)
	require.NoError(t, err)
	assert.Equal(t, 40.0, q.Fare.Subtotal)
	assert.Equal(t, 20.0, q.Fare.FinalFare)

	_, err = svc.Quote(context.Background(), domain.Coordinates{Lat: 91}, airport, domain.ConcessionGeneral)
	assert.True(t, domain.IsValidation(err))
}
