package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	domainerr "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
)

// userContextKey is the gin context key the authenticated user is stored under
const userContextKey = "authUser"

// RequireAuth middleware validates the bearer token and stores the
// authenticated user on the request context
func RequireAuth(authService usecase.AuthUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		user, err := authService.VerifyToken(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			message := "Invalid or expired token"
			if domainerr.ErrorCode(err) == domainerr.CodeForbidden {
				status = http.StatusForbidden
				message = "Account is banned"
			}

			logger.Warn("Rejected bearer token", map[string]any{
				"path":  c.Request.URL.Path,
				"ip":    c.ClientIP(),
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(status, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: message,
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequirePrivileged middleware rejects users without an administrative role.
// It must run after RequireAuth.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsPrivileged() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.CodeForbidden,
				Message: "Administrative role required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}
