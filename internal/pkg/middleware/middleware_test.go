package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/kirimin/internal/pkg/jwt"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = models.JWTConfig{Secret: "middleware-secret", Expiration: 5, Issuer: "kirimin-test"}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"user_id": UserID(c),
		"role":    c.Get(ContextUserRole).(string),
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken("agent-1", "agent", testJWTConfig)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/me", okHandler, JWTAuthMiddleware(testJWTConfig))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":"agent-1","role":"agent"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	agentToken, _, err := jwtpkg.GenerateToken("agent-1", "agent", testJWTConfig)
	require.NoError(t, err)
	requesterToken, _, err := jwtpkg.GenerateToken("req-1", "requester", testJWTConfig)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/agents/me", okHandler, JWTAuthMiddleware(testJWTConfig), RequireRole("agent"))

	for token, want := range map[string]int{agentToken: http.StatusOK, requesterToken: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/agents/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code)
	}
}

func TestValidateAPIKey(t *testing.T) {
	cfg := models.APIKeyConfig{Keys: map[string]string{"admin": "admin-key", "agent-service": ""}}
	e := echo.New()
	e.PUT("/internal/x", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("caller_service").(string))
	}, ValidateAPIKey(cfg, "admin", "agent-service"))

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "valid key", key: "admin-key", wantStatus: http.StatusOK},
		{name: "missing key", key: "", wantStatus: http.StatusUnauthorized},
		{name: "unknown key", key: "other", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/internal/x", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "admin", rec.Body.String())
			}
		})
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	e := echo.New()
	e.POST("/otp", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, UserRateLimiter(2, time.Minute, client))

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/otp", nil))
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusNoContent, do().Code)

	limited := do()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusNoContent, do().Code)
}

func TestRateLimiterMiddleware_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	e := echo.New()
	e.POST("/otp", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, UserRateLimiter(2, time.Minute, client))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/otp", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
