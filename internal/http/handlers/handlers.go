package handlers

import (
	"context"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/backend"
	intconfig "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/config"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/feeds"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/services"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/tracking"

	"github.com/gin-gonic/gin"
)

type BusTracking interface {
	Snapshot(ctx context.Context, ids []string) (tracking.Snapshot, error)
}

type DashboardSource interface {
	Get(ctx context.Context, force bool) (tracking.AdminData, error)
}

type AccountAdmin interface {
	TriggerNotification(ctx context.Context, n models.Notification) error
	UpdateConcessionVerification(ctx context.Context, userID string, v models.ConcessionVerification) error
}

// Handlers holds the collaborators every route needs. Service values are
// copied per request so each call logs its own request_id.
type Handlers struct {
	Env      intconfig.Env
	Fares    *services.FareService
	Scans    services.ScanService
	Passes   services.PassService
	Wallet   services.WalletService
	Trips    services.TripService
	Docs     services.DocsService
	Tracking BusTracking
	Admin    DashboardSource
	Accounts AccountAdmin
	Feed     feeds.VehicleFeed
	Ingest   location.Sink
	Metrics  *metrics.Collector
}

// ctx forwards the caller's bearer token to the backend.
func (h *Handlers) ctx(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if tok := middleware.GetBearerToken(c); tok != "" {
		ctx = backend.WithToken(ctx, tok)
	}
	return ctx
}
