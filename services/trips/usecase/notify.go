package usecase

import (
	"context"

	"github.com/piresc/kirimin/internal/pkg/logger"
)

// Fan-out failures are logged and never fail the transition that caused them.

func (uc *tripUC) notifyAgent(ctx context.Context, agentID, event string, data interface{}) {
	if err := uc.tripGW.NotifyAgent(ctx, agentID, event, data); err != nil {
		logger.WarnCtx(ctx, "Failed to notify agent",
			logger.String("agent_id", agentID),
			logger.String("event", event),
			logger.Err(err))
	}
}

func (uc *tripUC) notifyTrip(ctx context.Context, tripID, event string, data interface{}) {
	if err := uc.tripGW.NotifyTrip(ctx, tripID, event, data); err != nil {
		logger.WarnCtx(ctx, "Failed to notify trip room",
			logger.String("trip_id", tripID),
			logger.String("event", event),
			logger.Err(err))
	}
}

// withdrawOffer tells every pooled agent except keep that the trip is gone
// and drops the pool.
func (uc *tripUC) withdrawOffer(ctx context.Context, tripID, keep, reason string, data interface{}) {
	pool, err := uc.locationRepo.GetCandidatePool(ctx, tripID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load candidate pool",
			logger.String("trip_id", tripID),
			logger.Err(err))
		return
	}
	for _, agentID := range pool {
		if agentID == keep {
			continue
		}
		uc.notifyAgent(ctx, agentID, reason, data)
	}
	if err := uc.locationRepo.DeleteCandidatePool(ctx, tripID); err != nil {
		logger.WarnCtx(ctx, "Failed to delete candidate pool",
			logger.String("trip_id", tripID),
			logger.Err(err))
	}
}
