package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/tickets
func (h *Handlers) PurchaseTicket(c *gin.Context) {
	var req services.TicketRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Wallet
	svc.RequestID = middleware.GetRequestID(c)
	ticket, err := svc.PurchaseTicket(h.ctx(c), middleware.GetRequestContext(c).UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}
