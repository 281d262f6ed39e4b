package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"
)

type TripBackend interface {
	StartTrip(ctx context.Context, userID string, at models.Waypoint) (models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (models.Trip, error)
	EndTrip(ctx context.Context, tripID string, done models.RideCompletion) (models.Trip, error)
	TripHistory(ctx context.Context, userID string) ([]models.Trip, error)
	RideHistory(ctx context.Context, userID string) ([]models.Ride, error)
}

// TripService runs self-tracked journeys: the commuter's device supplies
// the start and end points and the fare is computed here on end.
type TripService struct {
	Backend     TripBackend
	Concessions ConcessionLookup
	Fares       *FareService
	RequestID   string
	Now         func() time.Time
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s TripService) Start(ctx context.Context, userID string, at domain.Coordinates) (models.Trip, error) {
	if !utils.ValidCoordinates(at) {
		return models.Trip{}, domain.ValidationError{Field: "location", Msg: "coordinates out of range"}
	}
	t, err := s.Backend.StartTrip(ctx, userID, models.Waypoint{Latitude: at.Lat, Longitude: at.Lng, Timestamp: s.now()})
	if err != nil {
		return models.Trip{}, upstream("start_trip", "trip", err)
	}
	utils.LogEvent(s.RequestID, "trip", "start", fmt.Sprintf("user_id=%s trip_id=%s", userID, t.ID))
	return t, nil
}

type TripEnd struct {
	Trip     models.Trip         `json:"trip"`
	Estimate TripEstimate        `json:"estimate"`
	Fare     utils.FareBreakdown `json:"fare"`
}

// End closes an active trip. The claimed concession is only honored when
// verified for the rider.
func (s TripService) End(ctx context.Context, userID, tripID string, at domain.Coordinates, claimed domain.Concession) (TripEnd, error) {
	if tripID == "" {
		return TripEnd{}, domain.ValidationError{Field: "tripId", Msg: "trip id is required"}
	}
	if !utils.ValidCoordinates(at) {
		return TripEnd{}, domain.ValidationError{Field: "location", Msg: "coordinates out of range"}
	}

	trip, err := s.Backend.GetTrip(ctx, tripID)
	if err != nil {
		return TripEnd{}, upstream("get_trip", "trip", err)
	}
	if trip.UserID != userID {
		return TripEnd{}, domain.NotFoundError{Resource: "trip"}
	}
	if !trip.Active {
		return TripEnd{}, domain.ConflictError{Resource: "trip", Msg: "already ended"}
	}

	c := chargedConcession(ctx, s.Concessions, s.RequestID, userID, claimed)
	fares := s.Fares
	if fares == nil {
		fares = &FareService{}
	}
	from := domain.Coordinates{Lat: trip.Start.Latitude, Lng: trip.Start.Longitude}
	est := fares.Estimate(ctx, from, at)
	fare := utils.ComputeFare(est.DistanceKm, c)

	end := models.Waypoint{Latitude: at.Lat, Longitude: at.Lng, Timestamp: s.now()}
	duration := est.DurationMin
	if elapsed := utils.MinutesBetween(trip.Start.Timestamp, end.Timestamp); elapsed > 0 {
		duration = utils.RoundTo(elapsed, 1)
	}

	ended, err := s.Backend.EndTrip(ctx, tripID, models.RideCompletion{
		End:             end,
		DistanceKm:      est.DistanceKm,
		DurationMin:     duration,
		Fare:            fare.FinalFare,
		UsedRealRouting: est.UsedRealRouting,
	})
	if err != nil {
		return TripEnd{}, upstream("end_trip", "trip", err)
	}
	utils.LogEvent(s.RequestID, "trip", "end", fmt.Sprintf("user_id=%s trip_id=%s fare=%s", userID, tripID, utils.FormatMoney(fare.FinalFare)))
	return TripEnd{Trip: ended, Estimate: est, Fare: fare}, nil
}

func (s TripService) TripHistory(ctx context.Context, userID string) ([]models.Trip, error) {
	out, err := s.Backend.TripHistory(ctx, userID)
	if err != nil {
		return nil, upstream("trip_history", "trips", err)
	}
	return out, nil
}

func (s TripService) RideHistory(ctx context.Context, userID string) ([]models.Ride, error) {
	out, err := s.Backend.RideHistory(ctx, userID)
	if err != nil {
		return nil, upstream("ride_history", "rides", err)
	}
	return out, nil
}
