package backend

import (
	"context"
	"net/url"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

func (c *Client) ListBusLocations(ctx context.Context) ([]models.BusLocation, error) {
	var out []models.BusLocation
	if err := c.do(ctx, "GET", "/bus-locations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBusLocation(ctx context.Context, loc models.BusLocation) error {
	return c.do(ctx, "POST", "/bus-locations/"+url.PathEscape(loc.BusID), loc, nil)
}

func (c *Client) ListBuses(ctx context.Context) ([]models.Bus, error) {
	var out []models.Bus
	if err := c.do(ctx, "GET", "/buses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var out []models.Route
	if err := c.do(ctx, "GET", "/routes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	var out []models.Station
	if err := c.do(ctx, "GET", "/stations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
