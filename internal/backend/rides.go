package backend

import (
	"context"
	"net/url"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

type startRequest struct {
	UserID   string          `json:"userId"`
	BusID    string          `json:"busId,omitempty"`
	Location models.Waypoint `json:"startLocation"`
}

func (c *Client) StartRide(ctx context.Context, userID, busID string, at models.Waypoint) (models.Ride, error) {
	var out models.Ride
	err := c.do(ctx, "POST", "/rides/start", startRequest{UserID: userID, BusID: busID, Location: at}, &out)
	return out, err
}

func (c *Client) EndRide(ctx context.Context, rideID string, done models.RideCompletion) (models.Ride, error) {
	var out models.Ride
	err := c.do(ctx, "PUT", "/rides/"+url.PathEscape(rideID)+"/end", done, &out)
	return out, err
}

// ActiveRide returns nil without error when the user has no active ride.
func (c *Client) ActiveRide(ctx context.Context, userID string) (*models.Ride, error) {
	var out models.Ride
	if err := c.do(ctx, "GET", "/rides/active/"+url.PathEscape(userID), nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if out.ID == "" || !out.Active {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) RideHistory(ctx context.Context, userID string) ([]models.Ride, error) {
	var out []models.Ride
	if err := c.do(ctx, "GET", "/rides/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartTrip(ctx context.Context, userID string, at models.Waypoint) (models.Trip, error) {
	var out models.Trip
	err := c.do(ctx, "POST", "/trips/start", startRequest{UserID: userID, Location: at}, &out)
	return out, err
}

func (c *Client) GetTrip(ctx context.Context, tripID string) (models.Trip, error) {
	var out models.Trip
	err := c.do(ctx, "GET", "/trips/"+url.PathEscape(tripID), nil, &out)
	return out, err
}

func (c *Client) EndTrip(ctx context.Context, tripID string, done models.RideCompletion) (models.Trip, error) {
	var out models.Trip
	err := c.do(ctx, "PUT", "/trips/"+url.PathEscape(tripID)+"/end", done, &out)
	return out, err
}

func (c *Client) TripHistory(ctx context.Context, userID string) ([]models.Trip, error) {
	var out []models.Trip
	if err := c.do(ctx, "GET", "/trips/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
