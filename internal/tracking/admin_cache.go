package tracking

import (
	"context"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"

	"github.com/bluele/gcache"
	"golang.org/x/sync/errgroup"
)

const (
	adminCacheKey = "admin-dashboard"

	// liveWindow is how recent a location must be to count a bus as active.
	liveWindow = 5 * time.Minute
)

type AdminSource interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListBuses(ctx context.Context) ([]models.Bus, error)
	ListStations(ctx context.Context) ([]models.Station, error)
	LocationFetcher
}

// AdminData is the admin dashboard aggregate.
type AdminData struct {
	Routes        []models.Route       `json:"routes"`
	Buses         []models.Bus         `json:"buses"`
	Stations      []models.Station     `json:"stations"`
	Locations     []models.BusLocation `json:"locations"`
	TotalRoutes   int                  `json:"totalRoutes"`
	TotalBuses    int                  `json:"totalBuses"`
	TotalStations int                  `json:"totalStations"`
	ActiveBuses   int                  `json:"activeBuses"`
	FetchedAt     time.Time            `json:"fetchedAt"`
}

// AdminCache serves AdminData from memory for ttl after each fetch.
type AdminCache struct {
	src     AdminSource
	cache   gcache.Cache
	clock   gcache.Clock
	metrics *metrics.Collector
}

func NewAdminCache(src AdminSource, ttl time.Duration, m *metrics.Collector) *AdminCache {
	return newAdminCache(src, ttl, m, gcache.NewRealClock())
}

func newAdminCache(src AdminSource, ttl time.Duration, m *metrics.Collector, clock gcache.Clock) *AdminCache {
	return &AdminCache{
		src:     src,
		cache:   gcache.New(1).Simple().Expiration(ttl).Clock(clock).Build(),
		clock:   clock,
		metrics: m,
	}
}

// Get returns cached data unless it is older than the ttl or force is set.
// Failed fetches are not cached.
func (c *AdminCache) Get(ctx context.Context, force bool) (AdminData, error) {
	if force {
		c.metrics.AdminCacheResult("forced")
	} else {
		if v, err := c.cache.Get(adminCacheKey); err == nil {
			c.metrics.AdminCacheResult("hit")
			return v.(AdminData), nil
		}
		c.metrics.AdminCacheResult("miss")
	}

	data, err := c.fetch(ctx)
	if err != nil {
		return AdminData{}, err
	}
	if err := c.cache.Set(adminCacheKey, data); err != nil {
		return AdminData{}, err
	}
	return data, nil
}

// Invalidate drops the cached data so the next Get fetches.
func (c *AdminCache) Invalidate() {
	c.cache.Remove(adminCacheKey)
}

func (c *AdminCache) fetch(ctx context.Context) (AdminData, error) {
	var data AdminData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Routes, err = c.src.ListRoutes(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Buses, err = c.src.ListBuses(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Stations, err = c.src.ListStations(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Locations, err = c.src.ListBusLocations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminData{}, err
	}

	now := c.clock.Now().UTC()
	data.TotalRoutes = len(data.Routes)
	data.TotalBuses = len(data.Buses)
	data.TotalStations = len(data.Stations)
	data.FetchedAt = now
	for _, loc := range data.Locations {
		if !loc.Timestamp.IsZero() && now.Sub(loc.Timestamp) <= liveWindow {
			data.ActiveBuses++
		}
	}
	return data, nil
}
