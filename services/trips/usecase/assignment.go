package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/services/trips/kind"
)

// Claim rejection reasons
const (
	ReasonAlreadyTaken = "already taken"
	ReasonNotEligible  = "agent is not eligible for this trip"
)

// ClaimTrip binds the agent to an open trip. The conditional update in the
// store decides the race; every loser gets ClaimRejected("already taken").
// The plaintext pickup code is returned only to the winner.
func (uc *tripUC) ClaimTrip(ctx context.Context, tripID, agentID string) (*models.ClaimResult, error) {
	agent, err := uc.agentRepo.GetAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.Approved {
		return nil, apperror.Forbidden("agent is not approved")
	}
	if err := kind.ValidateAgentServices(agent.VehicleClass, agent.Services); err != nil {
		return nil, err
	}

	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusOpen || trip.AgentID != nil {
		return nil, apperror.ClaimRejected(ReasonAlreadyTaken)
	}
	tk, err := kind.For(trip.Kind)
	if err != nil {
		return nil, err
	}
	if !eligible(ctx, tk, trip, agent) {
		return nil, apperror.ClaimRejected(ReasonNotEligible)
	}

	issue, err := uc.otp.Issue(models.OtpPhasePickup)
	if err != nil {
		return nil, err
	}

	claim := models.TripClaim{
		TripID:       tripID,
		AgentID:      agentID,
		SessionToken: uuid.New().String(),
		At:           uc.clock.Now(),
		PickupOtp:    *issue,
	}
	claimed, err := nrpkg.WithSegmentAndReturn(ctx, "TripRepo.ClaimTrip", func() (*models.Trip, error) {
		return uc.tripRepo.ClaimTrip(ctx, claim)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrClaimRejected) {
			logger.InfoCtx(ctx, "Claim lost",
				logger.String("trip_id", tripID),
				logger.String("agent_id", agentID))
		}
		return nil, err
	}
	claimed.RequesterStatus = claimed.Status.RequesterStatus()

	logger.InfoCtx(ctx, "Trip claimed",
		logger.String("trip_id", tripID),
		logger.String("agent_id", agentID))

	uc.withdrawOffer(ctx, tripID, agentID, constants.EventTripCancelled, models.TripCancelledEvent{
		TripID: tripID,
		Reason: ReasonAlreadyTaken,
	})
	uc.notifyTrip(ctx, tripID, constants.EventTripAssigned, models.TripAssignedEvent{
		TripID:          tripID,
		AgentID:         agentID,
		Status:          claimed.Status,
		RequesterStatus: claimed.RequesterStatus,
	})

	return &models.ClaimResult{
		Trip:         claimed,
		PickupOtp:    issue.Code,
		OtpExpiresAt: issue.ExpiresAt,
	}, nil
}
