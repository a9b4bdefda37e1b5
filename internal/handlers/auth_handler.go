package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/events"
	"github.com/edubase/school-service/internal/identity"
	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
	"github.com/edubase/school-service/internal/validator"
)

// AuthHandler exposes the authentication endpoints. These are the only
// routes outside the authenticated group.
type AuthHandler struct {
	BaseHandler
	gateway   identity.Gateway
	directory services.DirectoryService
	publisher events.EventPublisher
	validator *validator.Validator
}

func NewAuthHandler(gateway identity.Gateway, directory services.DirectoryService, publisher events.EventPublisher, v *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		gateway:     gateway,
		directory:   directory,
		publisher:   publisher,
		validator:   v,
	}
}

// sessionResponse is returned by every successful sign-in variant.
type sessionResponse struct {
	Session *identity.Session `json:"session"`
	Role    string            `json:"role"`
}

// SignUp registers a principal with the identity provider and creates its
// directory profile.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req validator.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	if verrs := h.validator.Validate(&req); verrs != nil {
		h.handleServiceError(c, verrs)
		return
	}

	session, err := h.gateway.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.completeSignIn(c, session, http.StatusCreated)
}

// SignIn authenticates with email and password.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req validator.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	if verrs := h.validator.Validate(&req); verrs != nil {
		h.handleServiceError(c, verrs)
		return
	}

	session, err := h.gateway.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.completeSignIn(c, session, http.StatusOK)
}

// SignInWithProvider completes a federated OAuth sign-in with the code the
// provider redirected back with.
func (h *AuthHandler) SignInWithProvider(c *gin.Context) {
	var req validator.ProviderSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	if verrs := h.validator.Validate(&req); verrs != nil {
		h.handleServiceError(c, verrs)
		return
	}

	session, err := h.gateway.SignInWithProvider(c.Request.Context(), req.Code, req.State)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.completeSignIn(c, session, http.StatusOK)
}

// SignOut ends the authenticated session.
func (h *AuthHandler) SignOut(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	if err := h.gateway.SignOut(c.Request.Context(), identity.UserHandle{ID: actor.ID}); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.publishSessionChange(c, nil)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Signed out"})
}

// completeSignIn registers the profile on first sign-in and responds with
// the session plus the directory role the client needs for its UI.
func (h *AuthHandler) completeSignIn(c *gin.Context, session *identity.Session, status int) {
	user, err := h.directory.RegisterIfAbsent(c.Request.Context(), session.Handle.ID, session.Handle.Email, session.Handle.DisplayName)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "User signed in", "user_id", user.ID, "role", user.Role)
	h.publishSessionChange(c, &user.ID)
	c.JSON(status, sessionResponse{Session: session, Role: string(user.Role)})
}

func (h *AuthHandler) publishSessionChange(c *gin.Context, userID *string) {
	err := h.publisher.Publish(c.Request.Context(), events.TopicSessionChanged, events.SessionChanged{UserID: userID})
	if err != nil {
		h.LogError(c, "Failed to publish session change", "error", err)
	}
}
