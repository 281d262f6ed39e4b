package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/passes/:id
func (h *Handlers) GetPass(c *gin.Context) {
	view, err := h.Passes.GetOwned(h.ctx(c), c.Param("id"), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/passes
func (h *Handlers) ListPasses(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	views, err := h.Passes.ListForUser(h.ctx(c), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/passes/:id/pdf
func (h *Handlers) GetPassPDF(c *gin.Context) {
	ctx := h.ctx(c)
	passID := c.Param("id")
	if _, err := h.Passes.GetOwned(ctx, passID, middleware.GetRequestContext(c)); err != nil {
		RespondDomainError(c, err)
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := docs.GeneratePassPDF(ctx, passID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
