package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type fareEstimateRequest struct {
	From       *domain.Coordinates `json:"from"`
	To         *domain.Coordinates `json:"to"`
	Concession string              `json:"concession"`
}

// POST /api/fare/estimate
func (h *Handlers) EstimateFare(c *gin.Context) {
	var req fareEstimateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		RespondDomainError(c, domain.ValidationError{Field: "from/to", Msg: "both points are required"})
		return
	}

	svc := h.Fares.WithRequestID(middleware.GetRequestID(c))
	quote, err := svc.Quote(c.Request.Context(), *req.From, *req.To, domain.ParseConcession(req.Concession))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
