package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type scanRequest struct {
	Payload    string              `json:"payload"`
	BusID      string              `json:"busId"`
	Location   *domain.Coordinates `json:"location"`
	Concession string              `json:"concession"`
}

// POST /api/scan
func (h *Handlers) Scan(c *gin.Context) {
	var req scanRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Scans
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.Scan(h.ctx(c), services.ScanRequest{
		Payload:    req.Payload,
		BusID:      req.BusID,
		Location:   req.Location,
		Concession: domain.ParseConcession(req.Concession),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if res.Action == services.ScanActionStart {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}
