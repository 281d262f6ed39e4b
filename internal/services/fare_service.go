package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/maps"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/bluele/gcache"
)

const (
	routeCacheSize = 1024
	routeCacheTTL  = 15 * time.Minute
)

type RouteProvider interface {
	DrivingRoute(ctx context.Context, from, to domain.Coordinates) (maps.Route, error)
}

// TripEstimate is a distance/duration pair; UsedRealRouting is false when
// the straight-line fallback answered.
type TripEstimate struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMin     float64 `json:"durationMin"`
	UsedRealRouting bool    `json:"usedRealRouting"`
}

type FareQuote struct {
	TripEstimate
	Fare utils.FareBreakdown `json:"fare"`
}

// FareService estimates trips with the routing provider and falls back to
// Haversine at the average speed on any failure. It never returns an error.
type FareService struct {
	Routes    RouteProvider
	Metrics   *metrics.Collector
	RequestID string

	cache gcache.Cache
}

func NewFareService(routes RouteProvider, m *metrics.Collector) *FareService {
	return &FareService{
		Routes:  routes,
		Metrics: m,
		cache:   gcache.New(routeCacheSize).LRU().Expiration(routeCacheTTL).Build(),
	}
}

// WithRequestID returns a copy that tags its log lines with requestID.
func (s *FareService) WithRequestID(requestID string) *FareService {
	cp := *s
	cp.RequestID = requestID
	return &cp
}

func (s *FareService) Estimate(ctx context.Context, from, to domain.Coordinates) TripEstimate {
	key := routeKey(from, to)
	if s.cache != nil {
		if v, err := s.cache.Get(key); err == nil {
			est := v.(TripEstimate)
			s.Metrics.FareEstimated(est.UsedRealRouting)
			return est
		}
	}

	if s.Routes != nil {
		route, err := s.Routes.DrivingRoute(ctx, from, to)
		if err == nil {
			est := TripEstimate{
				DistanceKm:      utils.RoundTo(route.DistanceKm, 2),
				DurationMin:     utils.RoundTo(route.DurationMin, 1),
				UsedRealRouting: true,
			}
			if s.cache != nil {
				_ = s.cache.Set(key, est)
			}
			s.Metrics.FareEstimated(true)
			return est
		}
		if !errors.Is(err, maps.ErrNoAPIKey) {
			s.Metrics.UpstreamFailed("distance_matrix")
			utils.LogEvent(s.RequestID, "fare", "routing_fallback", err.Error())
		}
	}

	km := utils.Haversine(from, to)
	s.Metrics.FareEstimated(false)
	return TripEstimate{
		DistanceKm:  utils.RoundTo(km, 2),
		DurationMin: utils.RoundTo(utils.EstimateDurationMin(km), 1),
	}
}

// Quote estimates the trip and prices it for the concession category.
func (s *FareService) Quote(ctx context.Context, from, to domain.Coordinates, c domain.Concession) (FareQuote, error) {
	if !utils.ValidCoordinates(from) {
		return FareQuote{}, domain.ValidationError{Field: "from", Msg: "coordinates out of range"}
	}
	if !utils.ValidCoordinates(to) {
		return FareQuote{}, domain.ValidationError{Field: "to", Msg: "coordinates out of range"}
	}
	est := s.Estimate(ctx, from, to)
	return FareQuote{TripEstimate: est, Fare: utils.ComputeFare(est.DistanceKm, c)}, nil
}

func routeKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f>%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}
