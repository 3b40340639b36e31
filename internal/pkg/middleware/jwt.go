package middleware

import (
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/kirimin/internal/pkg/jwt"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/utils"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := jwtpkg.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserRole, claims.Role)

			return next(c)
		}
	}
}

// RequireRole rejects callers whose token role is not one of roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextUserRole).(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "Role not permitted")
		}
	}
}

// UserID returns the authenticated caller's ID
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
