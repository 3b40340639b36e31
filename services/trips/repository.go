package trips

import (
	"context"
	"time"

	"github.com/piresc/kirimin/internal/pkg/models"
)

// TripRepo defines data access for trips and their settlement.
// Every mutating method is a single conditional update; a false result
// means the precondition no longer held and nothing was written.
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/kirimin/services/trips TripRepo,AgentRepo,LocationRepo
type TripRepo interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListOpenTrips(ctx context.Context, precision uint, cells []string) ([]*models.Trip, error)
	ClaimTrip(ctx context.Context, claim models.TripClaim) (*models.Trip, error)
	TransitionTrip(ctx context.Context, tripID, agentID string, from, to models.TripStatus, at time.Time) (bool, error)
	ArriveAtGate(ctx context.Context, arrival models.GateArrival) (bool, error)
	ApplyOtpAttempt(ctx context.Context, attempt models.OtpAttempt) (bool, *models.AgentStats, error)
	ReissueOtp(ctx context.Context, tripID string, status models.TripStatus, issue models.OtpIssue) (bool, error)
	CancelTrip(ctx context.Context, tripID, reason string, at time.Time) (bool, *string, error)
	Settle(ctx context.Context, entry *models.LedgerEntry) (*models.AgentStats, error)
}

// AgentRepo defines data access for agent records and counters
type AgentRepo interface {
	UpsertAgent(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	GetAgent(ctx context.Context, agentID string) (*models.Agent, error)
	GetAgentsByIDs(ctx context.Context, agentIDs []string) ([]*models.Agent, error)
	SetOnline(ctx context.Context, agentID string, online bool) error
	GetStats(ctx context.Context, agentID string) (*models.AgentStats, error)
}

// LocationRepo defines the geo index, heartbeats and candidate pools kept in Redis
type LocationRepo interface {
	UpdateAgentLocation(ctx context.Context, agentID string, location models.Location) error
	FindNearbyAgents(ctx context.Context, location models.Location, radiusKm float64) ([]*models.NearbyAgent, error)
	GetHeartbeats(ctx context.Context, agentIDs []string) (map[string]time.Time, error)
	SaveCandidatePool(ctx context.Context, tripID string, agentIDs []string, ttl time.Duration) error
	GetCandidatePool(ctx context.Context, tripID string) ([]string, error)
	DeleteCandidatePool(ctx context.Context, tripID string) error
}
