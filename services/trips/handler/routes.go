package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/middleware"
	"github.com/piresc/kirimin/internal/pkg/models"
	pkgws "github.com/piresc/kirimin/internal/pkg/websocket"
	"github.com/piresc/kirimin/services/trips"
	httpHandler "github.com/piresc/kirimin/services/trips/handler/http"
	natsHandler "github.com/piresc/kirimin/services/trips/handler/nats"
	wsHandler "github.com/piresc/kirimin/services/trips/handler/websocket"
)

// Handler combines all handlers for the trips service
type Handler struct {
	tripsHTTP   *httpHandler.TripsHandler
	tripsSocket *wsHandler.TripsSocket
	fanout      *natsHandler.FanoutHandler
	redisClient *redis.Client
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	tripUC trips.TripUC,
	manager *pkgws.Manager,
	subscriber natsHandler.Subscriber,
	redisClient *redis.Client,
	cfg *models.Config,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		tripsHTTP:   httpHandler.NewTripsHandler(tripUC),
		tripsSocket: wsHandler.NewTripsSocket(tripUC, manager),
		fanout:      natsHandler.NewFanoutHandler(subscriber, manager, nrApp),
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP and WebSocket routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.tripsSocket.HandleWebSocket)

	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)
	agentOnly := middleware.RequireRole(constants.RoleAgent)
	requesterOnly := middleware.RequireRole(constants.RoleRequester)
	otpLimit := middleware.UserRateLimiter(
		h.cfg.RateLimit.OTPLimit,
		time.Duration(h.cfg.RateLimit.OTPPeriodSeconds)*time.Second,
		h.redisClient,
	)

	tripsGroup := e.Group("/trips", auth)
	tripsGroup.POST("", h.tripsHTTP.CreateTrip, requesterOnly)
	tripsGroup.GET("/nearby", h.tripsHTTP.FindNearbyTrips, agentOnly)
	tripsGroup.GET("/:tripID", h.tripsHTTP.GetTrip)
	tripsGroup.POST("/:tripID/accept", h.tripsHTTP.AcceptTrip, agentOnly)
	tripsGroup.POST("/:tripID/depart", h.tripsHTTP.Depart, agentOnly)
	tripsGroup.POST("/:tripID/reached-pickup", h.tripsHTTP.ReachedPickup, agentOnly)
	tripsGroup.POST("/:tripID/verify-otp", h.tripsHTTP.VerifyOtp, agentOnly, otpLimit)
	tripsGroup.POST("/:tripID/resend-otp", h.tripsHTTP.ResendOtp, agentOnly, otpLimit)
	tripsGroup.POST("/:tripID/reached-destination", h.tripsHTTP.ReachedDestination, agentOnly)
	tripsGroup.POST("/:tripID/cancel", h.tripsHTTP.CancelTrip)

	agentsGroup := e.Group("/agents/me", auth, agentOnly)
	agentsGroup.GET("/stats", h.tripsHTTP.GetMyStats)
	agentsGroup.POST("/location", h.tripsHTTP.UpdateMyLocation)

	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.APIKey, "agent-service", "admin"))
	internal.PUT("/agents/:agentID", h.tripsHTTP.UpsertAgent)
	internal.POST("/trips/:tripID/settle", h.tripsHTTP.SettleTrip)
}

// StartConsumers starts the fan-out consumer
func (h *Handler) StartConsumers() error {
	return h.fanout.Start()
}

// StopConsumers stops the fan-out consumer
func (h *Handler) StopConsumers() {
	h.fanout.Stop()
}
