package handlers

import (
	"net/http"
	"strconv"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/feeds"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxTrackedBuses = 50

// GET /api/tracking/buses?ids=a,b
func (h *Handlers) TrackBuses(c *gin.Context) {
	ids := utils.SplitIDList(c.Query("ids"))
	if len(ids) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "ids", Msg: "at least one bus id is required"})
		return
	}
	if len(ids) > maxTrackedBuses {
		RespondDomainError(c, domain.ValidationError{Field: "ids", Msg: "at most " + strconv.Itoa(maxTrackedBuses) + " buses"})
		return
	}
	snap, err := h.Tracking.Snapshot(c.Request.Context(), ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /api/feeds/vehicle-positions[?format=json]
func (h *Handlers) VehiclePositions(c *gin.Context) {
	msg, err := h.Feed.Build(h.ctx(c))
	if err != nil {
		RespondDomainError(c, domain.UpstreamError{Op: "vehicle_positions", Err: err})
		return
	}
	body, contentType, err := feeds.Encode(msg, c.Query("format") == "json")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}
