package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
	"github.com/edubase/school-service/internal/validator"
)

// UserHandler exposes the user directory endpoints.
type UserHandler struct {
	BaseHandler
	directory services.DirectoryService
	validator *validator.Validator
}

func NewUserHandler(directory services.DirectoryService, v *validator.Validator, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		directory:   directory,
		validator:   v,
	}
}

// ListUsers returns the directory, optionally filtered by ?role=.
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var (
		users []models.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.directory.ListUsersByRole(c.Request.Context(), actor, models.UserRole(role))
	} else {
		users, err = h.directory.ListUsers(c.Request.Context(), actor)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	user, err := h.directory.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateRole changes a user's role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req validator.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	if verrs := h.validator.Validate(&req); verrs != nil {
		h.handleServiceError(c, verrs)
		return
	}

	userID := c.Param("id")
	h.LogRequest(c, "Updating role", "target_id", userID, "role", req.Role)

	if err := h.directory.SetRole(c.Request.Context(), actor, userID, req.Role); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Role updated"})
}
