package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
)

// TakeHome is the agent's share of fare, rounded to the nearest minor unit
func TakeHome(fare int64, share float64) int64 {
	return int64(math.Round(float64(fare) * share))
}

func (uc *tripUC) ledgerEntry(trip *models.Trip, at time.Time) (*models.LedgerEntry, error) {
	if trip.AgentID == nil {
		return nil, apperror.Validation("trip %s has no assigned agent", trip.ID)
	}
	return &models.LedgerEntry{
		ID:        uuid.New().String(),
		TripID:    trip.ID,
		AgentID:   *trip.AgentID,
		Kind:      trip.Kind,
		Pickup:    trip.Pickup,
		Drop:      trip.Drop,
		Fare:      trip.FareEstimate,
		TakeHome:  TakeHome(trip.FareEstimate, uc.agentShare),
		Currency:  trip.Currency,
		SettledAt: at,
	}, nil
}

// SettleTrip settles a completed trip whose settlement did not go through.
// The ledger is keyed by trip id, so a second settlement is rejected with
// AlreadySettled and leaves the counters untouched.
func (uc *tripUC) SettleTrip(ctx context.Context, tripID string) (*models.AgentStats, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusCompleted {
		return nil, apperror.InvalidTransition(string(trip.Status), string(models.TripStatusCompleted))
	}

	entry, err := uc.ledgerEntry(trip, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	stats, err := nrpkg.WithSegmentAndReturn(ctx, "TripRepo.Settle", func() (*models.AgentStats, error) {
		return uc.tripRepo.Settle(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.afterSettlement(ctx, trip, entry, stats)
	return stats, nil
}

// afterSettlement publishes the settlement and pushes the new counters
func (uc *tripUC) afterSettlement(ctx context.Context, trip *models.Trip, entry *models.LedgerEntry, stats *models.AgentStats) {
	logger.InfoCtx(ctx, "Trip settled",
		logger.String("trip_id", entry.TripID),
		logger.String("agent_id", entry.AgentID),
		logger.Int64("fare", entry.Fare),
		logger.Int64("take_home", entry.TakeHome))

	if err := uc.tripGW.PublishSettlement(ctx, entry); err != nil {
		logger.WarnCtx(ctx, "Failed to queue settlement event",
			logger.String("trip_id", entry.TripID),
			logger.Err(err))
	}

	if stats != nil {
		uc.notifyAgent(ctx, entry.AgentID, constants.EventStatsUpdated, stats)
	}
	uc.notifyTrip(ctx, trip.ID, constants.EventTripCompleted, models.TripCompletedEvent{
		TripID:   trip.ID,
		Fare:     entry.Fare,
		Currency: entry.Currency,
	})
}

// GetAgentStats returns the agent's running counters
func (uc *tripUC) GetAgentStats(ctx context.Context, agentID string) (*models.AgentStats, error) {
	return uc.agentRepo.GetStats(ctx, agentID)
}
