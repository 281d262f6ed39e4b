package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/dashboard?refresh=true
func (h *Handlers) AdminDashboard(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	data, err := h.Admin.Get(h.ctx(c), force)
	if err != nil {
		RespondDomainError(c, domain.UpstreamError{Op: "admin_dashboard", Err: err})
		return
	}
	c.JSON(http.StatusOK, data)
}

// POST /api/admin/notifications
func (h *Handlers) SendNotification(c *gin.Context) {
	var n models.Notification
	if !BindJSONOrError(c, &n) {
		return
	}
	n.UserID = strings.TrimSpace(n.UserID)
	if n.UserID == "" || strings.TrimSpace(n.Message) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "userId/message", Msg: "both are required"})
		return
	}
	if err := h.Accounts.TriggerNotification(h.ctx(c), n); err != nil {
		RespondDomainError(c, domain.UpstreamError{Op: "trigger_notification", Err: err})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "notify", "user_id="+n.UserID)
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// PUT /api/admin/concessions/:userId
func (h *Handlers) VerifyConcession(c *gin.Context) {
	var v models.ConcessionVerification
	if !BindJSONOrError(c, &v) {
		return
	}
	userID := strings.TrimSpace(c.Param("userId"))
	concession := domain.Concession(strings.ToLower(strings.TrimSpace(v.ConcessionType)))
	if domain.ParseConcession(string(concession)) != concession {
		RespondDomainError(c, domain.ValidationError{Field: "concessionType", Msg: fmt.Sprintf("unknown category %q", v.ConcessionType)})
		return
	}
	v.ConcessionType = string(concession)

	if err := h.Accounts.UpdateConcessionVerification(h.ctx(c), userID, v); err != nil {
		RespondDomainError(c, domain.UpstreamError{Op: "update_concession", Err: err})
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "verify_concession",
		fmt.Sprintf("user_id=%s type=%s verified=%t", userID, v.ConcessionType, v.Verified))
	c.JSON(http.StatusOK, gin.H{"userId": userID, "verification": v})
}
