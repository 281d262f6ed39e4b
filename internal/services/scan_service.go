package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"
)

const (
	ScanActionStart = "start"
	ScanActionEnd   = "end"
)

type RideBackend interface {
	ActiveRide(ctx context.Context, userID string) (*models.Ride, error)
	StartRide(ctx context.Context, userID, busID string, at models.Waypoint) (models.Ride, error)
	EndRide(ctx context.Context, rideID string, done models.RideCompletion) (models.Ride, error)
}

type Notifier interface {
	TriggerNotification(ctx context.Context, n models.Notification) error
}

type ScanJournal interface {
	RecordScan(ctx context.Context, rec *models.ScanRecord) error
}

// Locator resolves a bus's position when the scan request carries none.
type Locator interface {
	BusPosition(ctx context.Context, busID string) (location.Sample, error)
}

type ScanRequest struct {
	Payload    string
	BusID      string
	Location   *domain.Coordinates
	Concession domain.Concession
}

type ScanResult struct {
	Action   string               `json:"action"`
	UserID   string               `json:"userId"`
	Ride     models.Ride          `json:"ride"`
	Estimate *TripEstimate        `json:"estimate,omitempty"`
	Fare     *utils.FareBreakdown `json:"fare,omitempty"`
}

// ScanService checks a rider in on their first scan and out on the next.
type ScanService struct {
	Rides       RideBackend
	Notifier    Notifier
	Journal     ScanJournal
	Locator     Locator
	Concessions ConcessionLookup
	Fares       *FareService
	Metrics     *metrics.Collector
	RequestID   string
	Now         func() time.Time
}

func (s ScanService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s ScanService) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	userID, ok := utils.ParseQRUserID(req.Payload)
	if !ok {
		return ScanResult{}, domain.ValidationError{Field: "payload", Msg: "QR code is empty"}
	}

	at, err := s.position(ctx, req.BusID, req.Location)
	if err != nil {
		return ScanResult{}, err
	}

	active, err := s.Rides.ActiveRide(ctx, userID)
	if err != nil {
		return ScanResult{}, upstream("active_ride", "ride", err)
	}

	var res ScanResult
	if active == nil {
		res, err = s.start(ctx, userID, req.BusID, at)
	} else {
		res, err = s.end(ctx, *active, at, req.Concession)
	}
	if err != nil {
		return ScanResult{}, err
	}

	rec := models.ScanRecord{UserID: userID, BusID: req.BusID, Action: res.Action, RideID: res.Ride.ID, ScannedAt: at.Timestamp}
	if s.Journal != nil {
		if err := s.Journal.RecordScan(ctx, &rec); err != nil {
			utils.LogError(s.RequestID, "scan", "journal", err)
		}
	}
	s.Metrics.ScanRecorded(res.Action)
	s.notify(ctx, res)
	utils.LogEvent(s.RequestID, "scan", res.Action, fmt.Sprintf("user_id=%s ride_id=%s", userID, res.Ride.ID))
	return res, nil
}

func (s ScanService) start(ctx context.Context, userID, busID string, at models.Waypoint) (ScanResult, error) {
	ride, err := s.Rides.StartRide(ctx, userID, busID, at)
	if err != nil {
		return ScanResult{}, upstream("start_ride", "ride", err)
	}
	return ScanResult{Action: ScanActionStart, UserID: userID, Ride: ride}, nil
}

func (s ScanService) end(ctx context.Context, ride models.Ride, at models.Waypoint, claimed domain.Concession) (ScanResult, error) {
	c := chargedConcession(ctx, s.Concessions, s.RequestID, ride.UserID, claimed)
	from := domain.Coordinates{Lat: ride.Start.Latitude, Lng: ride.Start.Longitude}
	to := domain.Coordinates{Lat: at.Latitude, Lng: at.Longitude}

	fares := s.Fares
	if fares == nil {
		fares = &FareService{}
	}
	est := fares.Estimate(ctx, from, to)
	fare := utils.ComputeFare(est.DistanceKm, c)

	duration := est.DurationMin
	if elapsed := utils.MinutesBetween(ride.Start.Timestamp, at.Timestamp); elapsed > 0 {
		duration = utils.RoundTo(elapsed, 1)
	}

	ended, err := s.Rides.EndRide(ctx, ride.ID, models.RideCompletion{
		End:             at,
		DistanceKm:      est.DistanceKm,
		DurationMin:     duration,
		Fare:            fare.FinalFare,
		UsedRealRouting: est.UsedRealRouting,
	})
	if err != nil {
		return ScanResult{}, upstream("end_ride", "ride", err)
	}
	if ended.ID == "" {
		ended = ride
	}
	return ScanResult{Action: ScanActionEnd, UserID: ride.UserID, Ride: ended, Estimate: &est, Fare: &fare}, nil
}

// position uses the request's coordinates, else the latest fresh sample of
// the scanning bus.
func (s ScanService) position(ctx context.Context, busID string, c *domain.Coordinates) (models.Waypoint, error) {
	now := s.now()
	if c != nil {
		if !utils.ValidCoordinates(*c) {
			return models.Waypoint{}, domain.ValidationError{Field: "location", Msg: "coordinates out of range"}
		}
		return models.Waypoint{Latitude: c.Lat, Longitude: c.Lng, Timestamp: now}, nil
	}
	if s.Locator == nil || strings.TrimSpace(busID) == "" {
		return models.Waypoint{}, domain.ErrGeolocationUnavailable
	}
	sample, err := s.Locator.BusPosition(ctx, busID)
	if err != nil {
		return models.Waypoint{}, err
	}
	return models.Waypoint{Latitude: sample.Latitude, Longitude: sample.Longitude, Timestamp: now}, nil
}

func (s ScanService) notify(ctx context.Context, res ScanResult) {
	if s.Notifier == nil {
		return
	}
	n := models.Notification{UserID: res.UserID, Type: "ride"}
	switch res.Action {
	case ScanActionStart:
		n.Title = "Ride started"
		n.Message = "Your ride has started. Scan again when you get off."
	default:
		n.Title = "Ride completed"
		n.Message = fmt.Sprintf("Distance %.2f km, fare %s.", res.Ride.DistanceKm, utils.FormatRupees(res.Ride.Fare))
		if res.Fare != nil {
			n.Message = fmt.Sprintf("Distance %.2f km, fare %s.", res.Fare.DistanceKm, utils.FormatRupees(res.Fare.FinalFare))
		}
	}
	if err := s.Notifier.TriggerNotification(ctx, n); err != nil {
		utils.LogError(s.RequestID, "scan", "notify", err)
	}
}
