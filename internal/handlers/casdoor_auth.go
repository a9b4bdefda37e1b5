package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/identity"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
)

// CasdoorAuthMiddleware authenticates requests against the identity provider
// and resolves the caller's directory record.
type CasdoorAuthMiddleware struct {
	gateway   identity.Gateway
	directory services.DirectoryService
	logger    utils.Logger
}

func NewCasdoorAuthMiddleware(gateway identity.Gateway, directory services.DirectoryService, logger utils.Logger) *CasdoorAuthMiddleware {
	return &CasdoorAuthMiddleware{
		gateway:   gateway,
		directory: directory,
		logger:    logger,
	}
}

// AuthMiddleware validates the bearer token and loads the caller's profile,
// creating it on first sign-in. The actor's id and role land in the gin
// context for the handlers.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Missing or malformed authorization header"})
			c.Abort()
			return
		}

		handle, err := cam.gateway.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid token"})
			c.Abort()
			return
		}

		// Roles live in the directory, not in the token: a first sign-in
		// registers the profile as a student.
		user, err := cam.directory.RegisterIfAbsent(c.Request.Context(), handle.ID, handle.Email, handle.DisplayName)
		if err != nil {
			cam.logger.Error("Failed to resolve authenticated user", "user_id", handle.ID, "error", err)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Failed to resolve user"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRoleMiddleware aborts with 403 unless the actor holds one of the
// given roles. Fine-grained checks stay in the service layer; this is the
// route-level gate.
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
			c.Abort()
			return
		}

		role := userRole.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient role"})
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
