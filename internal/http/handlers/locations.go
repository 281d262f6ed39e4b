package handlers

import (
	"net/http"
	"strings"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/locations, called by on-bus devices.
func (h *Handlers) IngestLocation(c *gin.Context) {
	var s location.Sample
	if !BindJSONOrError(c, &s) {
		return
	}
	s.BusID = strings.TrimSpace(s.BusID)
	if s.BusID == "" {
		RespondDomainError(c, domain.ValidationError{Field: "busId", Msg: "is required"})
		return
	}
	if !utils.ValidCoordinates(domain.Coordinates{Lat: s.Latitude, Lng: s.Longitude}) {
		RespondDomainError(c, domain.ValidationError{Field: "location", Msg: "coordinates out of range"})
		return
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = utils.NowUTC()
	}

	if err := h.Ingest.Ingest(c.Request.Context(), s); err != nil {
		utils.LogError(middleware.GetRequestID(c), "location", "ingest", err)
		RespondDomainError(c, domain.UpstreamError{Op: "ingest_location", Err: err})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "busId": s.BusID})
}
