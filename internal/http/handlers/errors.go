package handlers

import (
	"net/http"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsLimit(err):
		respondError(c, http.StatusTooManyRequests, "limit_exceeded", err.Error())
	case domain.IsGeolocation(err):
		respondError(c, http.StatusServiceUnavailable, "geolocation_unavailable", err.Error())
	case domain.IsUpstream(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "upstream_error", err.Error())
		respondError(c, http.StatusBadGateway, "upstream_error", err.Error())
	default:
		utils.LogError(middleware.GetRequestID(c), "http", "internal_error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
