package trips

import (
	"context"

	"github.com/piresc/kirimin/internal/pkg/models"
)

// TripUC defines the trip matching and lifecycle business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/kirimin/services/trips TripUC
type TripUC interface {
	CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.CreateTripResponse, error)
	GetTrip(ctx context.Context, tripID, callerID string) (*models.Trip, error)

	FindNearbyTrips(ctx context.Context, query models.NearbyTripsQuery) ([]*models.NearbyTrip, error)
	MatchAgents(ctx context.Context, trip *models.Trip) ([]*models.AgentCandidate, error)

	ClaimTrip(ctx context.Context, tripID, agentID string) (*models.ClaimResult, error)
	Depart(ctx context.Context, req models.TransitionRequest) (*models.Trip, error)
	ReachPickup(ctx context.Context, req models.TransitionRequest) (*models.Trip, error)
	VerifyOtp(ctx context.Context, req models.VerifyOtpRequest) (*models.VerifyOtpResult, error)
	ResendOtp(ctx context.Context, req models.ResendOtpRequest) (*models.OtpResponse, error)
	ReachDestination(ctx context.Context, req models.TransitionRequest) (*models.DestinationArrival, error)
	CancelTrip(ctx context.Context, req models.CancelTripRequest) (*models.Trip, error)

	SettleTrip(ctx context.Context, tripID string) (*models.AgentStats, error)
	GetAgentStats(ctx context.Context, agentID string) (*models.AgentStats, error)

	UpsertAgent(ctx context.Context, req models.UpsertAgentRequest) (*models.Agent, error)
	UpdateAgentLocation(ctx context.Context, update models.LocationUpdate) error
	SetAgentPresence(ctx context.Context, agentID string, online bool) error
}
