package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
	"github.com/sangkips/shopflow/pkg/apperror"
)

// Context keys set by AuthMiddleware
const (
	ContextUser     = "user"
	ContextUsername = "username"
	ContextRole     = "user_role"
)

// AuthMiddleware authenticates the bearer token against the active session
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(ContextUser, user)
		c.Set(ContextUsername, user.Username)
		c.Set(ContextRole, user.Role)

		c.Next()
	}
}

// RequireCapability creates a middleware that requires the user's role to
// grant a capability
func RequireCapability(capability enum.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUser)
		if !exists {
			response.Error(c, apperror.NewForbiddenError("Access denied"))
			c.Abort()
			return
		}

		user, ok := value.(*entity.User)
		if !ok || !user.Can(capability) {
			response.Error(c, apperror.NewForbiddenError("You do not have permission to perform this action"))
			c.Abort()
			return
		}

		c.Next()
	}
}
