package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/identity"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
	"github.com/edubase/school-service/internal/validator"
)

// ErrorResponse is the error envelope every endpoint returns on failure.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps payloads that have no natural top-level shape.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the helpers shared by all HTTP handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// actorFromContext rebuilds the authenticated actor the auth middleware
// stored. The bool is false when the request never passed authentication.
func (h *BaseHandler) actorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		return services.Actor{}, false
	}
	userRole, ok := c.Get("user_role")
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{
		ID:   userID.(string),
		Role: userRole.(models.UserRole),
	}, true
}

// requireActor aborts with 401 when no authenticated actor is present.
func (h *BaseHandler) requireActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := h.actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
	}
	return actor, ok
}

// handleServiceError maps service layer failures onto HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors

	switch {
	case identity.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Permission denied",
		})
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: verrs,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, "Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
