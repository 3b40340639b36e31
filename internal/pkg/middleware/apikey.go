package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// ValidateAPIKey validates the API key for service-to-service communication.
// Only keys configured for one of allowedServices are accepted.
func ValidateAPIKey(cfg models.APIKeyConfig, allowedServices ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			validKey := false
			for _, service := range allowedServices {
				expected := cfg.Keys[service]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					validKey = true
					c.Set("caller_service", service)
					break
				}
			}

			if !validKey {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
