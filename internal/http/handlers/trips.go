package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type tripStartRequest struct {
	Location *domain.Coordinates `json:"location"`
}

type tripEndRequest struct {
	TripID     string              `json:"tripId"`
	Location   *domain.Coordinates `json:"location"`
	Concession string              `json:"concession"`
}

func (h *Handlers) tripService(c *gin.Context) services.TripService {
	svc := h.Trips
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

// POST /api/trips/start
func (h *Handlers) StartTrip(c *gin.Context) {
	var req tripStartRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Location == nil {
		RespondDomainError(c, domain.ValidationError{Field: "location", Msg: "is required"})
		return
	}
	trip, err := h.tripService(c).Start(h.ctx(c), middleware.GetRequestContext(c).UserID, *req.Location)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// POST /api/trips/end
func (h *Handlers) EndTrip(c *gin.Context) {
	var req tripEndRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Location == nil {
		RespondDomainError(c, domain.ValidationError{Field: "location", Msg: "is required"})
		return
	}
	out, err := h.tripService(c).End(h.ctx(c), middleware.GetRequestContext(c).UserID, req.TripID, *req.Location, domain.ParseConcession(req.Concession))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/history
func (h *Handlers) TripHistory(c *gin.Context) {
	trips, err := h.tripService(c).TripHistory(h.ctx(c), middleware.GetRequestContext(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/rides/history
func (h *Handlers) RideHistory(c *gin.Context) {
	rides, err := h.tripService(c).RideHistory(h.ctx(c), middleware.GetRequestContext(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}
