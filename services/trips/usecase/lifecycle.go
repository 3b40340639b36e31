package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/services/trips/kind"
)

// gateStatus is the state in which a phase code is verified
var gateStatus = map[models.OtpPhase]models.TripStatus{
	models.OtpPhasePickup: models.TripStatusAtPickup,
	models.OtpPhaseDrop:   models.TripStatusAtDestination,
}

// resendStatuses are the states in which a phase code may be reissued
var resendStatuses = map[models.OtpPhase][]models.TripStatus{
	models.OtpPhasePickup: {models.TripStatusAccepted, models.TripStatusEnRoutePickup, models.TripStatusAtPickup},
	models.OtpPhaseDrop:   {models.TripStatusAtDestination},
}

// staleUpdate means a conditional update matched no row because the trip
// changed between read and write.
type staleUpdate struct {
	from, to models.TripStatus
}

func (e staleUpdate) Error() string {
	return fmt.Sprintf("trip changed while moving from %s to %s", e.from, e.to)
}

// Depart records that the assigned agent is heading to the pickup
func (uc *tripUC) Depart(ctx context.Context, req models.TransitionRequest) (*models.Trip, error) {
	trip, _, err := uc.loadAssigned(ctx, req.TripID, req.AgentID)
	if err != nil {
		return nil, err
	}
	return uc.advance(ctx, trip, req.AgentID, models.TripStatusEnRoutePickup,
		models.TripStatusAccepted)
}

// ReachPickup records that the assigned agent arrived at the pickup
func (uc *tripUC) ReachPickup(ctx context.Context, req models.TransitionRequest) (*models.Trip, error) {
	trip, _, err := uc.loadAssigned(ctx, req.TripID, req.AgentID)
	if err != nil {
		return nil, err
	}
	return uc.advance(ctx, trip, req.AgentID, models.TripStatusAtPickup,
		models.TripStatusAccepted, models.TripStatusEnRoutePickup)
}

// ReachDestination records arrival at the drop point and issues the drop
// code, which starts expiring only from here. Kinds without a drop code
// complete at pickup and never reach this state.
func (uc *tripUC) ReachDestination(ctx context.Context, req models.TransitionRequest) (*models.DestinationArrival, error) {
	trip, tk, err := uc.loadAssigned(ctx, req.TripID, req.AgentID)
	if err != nil {
		return nil, err
	}
	to := models.TripStatusAtDestination
	if !hasPhase(tk, models.OtpPhaseDrop) || trip.Status != models.TripStatusEnRouteDrop {
		return nil, apperror.InvalidTransition(string(trip.Status), string(to))
	}

	issue, err := uc.otp.Issue(models.OtpPhaseDrop)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var ok bool
	err = nrpkg.WithSegment(ctx, "TripRepo.ArriveAtGate", func() error {
		var err error
		ok, err = uc.tripRepo.ArriveAtGate(ctx, models.GateArrival{
			TripID:     trip.ID,
			AgentID:    req.AgentID,
			FromStatus: trip.Status,
			ToStatus:   to,
			Otp:        *issue,
			At:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidTransition(string(trip.Status), string(to))
	}

	logger.InfoCtx(ctx, "Trip status changed",
		logger.String("trip_id", trip.ID),
		logger.String("from", string(trip.Status)),
		logger.String("to", string(to)))

	expiresAt := issue.ExpiresAt
	trip.Status = to
	trip.RequesterStatus = to.RequesterStatus()
	trip.DropOtp = models.OtpRecord{Hash: issue.Hash, ExpiresAt: &expiresAt}
	trip.UpdatedAt = now
	uc.notifyStatus(ctx, trip)

	return &models.DestinationArrival{
		Trip:         trip,
		DropOtp:      issue.Code,
		OtpExpiresAt: issue.ExpiresAt,
	}, nil
}

// advance applies an informational transition guarded by the expected current state
func (uc *tripUC) advance(ctx context.Context, trip *models.Trip, agentID string, to models.TripStatus, from ...models.TripStatus) (*models.Trip, error) {
	if !containsStatus(from, trip.Status) {
		return nil, apperror.InvalidTransition(string(trip.Status), string(to))
	}

	now := uc.clock.Now()
	ok, err := uc.tripRepo.TransitionTrip(ctx, trip.ID, agentID, trip.Status, to, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidTransition(string(trip.Status), string(to))
	}

	logger.InfoCtx(ctx, "Trip status changed",
		logger.String("trip_id", trip.ID),
		logger.String("from", string(trip.Status)),
		logger.String("to", string(to)))

	trip.Status = to
	trip.RequesterStatus = to.RequesterStatus()
	trip.UpdatedAt = now
	uc.notifyStatus(ctx, trip)
	return trip, nil
}

// VerifyOtp checks a phase code and, on success, advances the trip past the
// gate. Every verification that reaches the store counts as an attempt.
func (uc *tripUC) VerifyOtp(ctx context.Context, req models.VerifyOtpRequest) (*models.VerifyOtpResult, error) {
	if err := uc.otp.ValidateFormat(req.Code); err != nil {
		return nil, err
	}

	var stale staleUpdate
	for i := 0; i < maxCASRetries; i++ {
		result, err := uc.verifyOnce(ctx, req)
		if s, ok := err.(staleUpdate); ok {
			stale = s
			continue
		}
		return result, err
	}
	return nil, apperror.InvalidTransition(string(stale.from), string(stale.to))
}

func (uc *tripUC) verifyOnce(ctx context.Context, req models.VerifyOtpRequest) (*models.VerifyOtpResult, error) {
	trip, tk, err := uc.loadAssigned(ctx, req.TripID, req.AgentID)
	if err != nil {
		return nil, err
	}

	phase, err := resolvePhase(tk, req.Phase, trip.Status)
	if err != nil {
		return nil, err
	}
	next := nextStatus(tk, phase)
	if trip.Status != gateStatus[phase] {
		return nil, apperror.InvalidTransition(string(trip.Status), string(next))
	}

	record := trip.Otp(phase)
	if uc.otp.Locked(record) {
		return nil, apperror.InvalidOtp(apperror.ReasonLocked)
	}
	checkErr := uc.otp.Check(record, req.Code)

	now := uc.clock.Now()
	attempt := models.OtpAttempt{
		TripID:           trip.ID,
		Phase:            phase,
		FromStatus:       trip.Status,
		ExpectedAttempts: record.Attempts,
		At:               now,
	}
	if checkErr == nil {
		attempt.Verified = true
		attempt.ToStatus = next
		if next == models.TripStatusCompleted {
			attempt.Settlement, err = uc.ledgerEntry(trip, now)
			if err != nil {
				return nil, err
			}
		}
	}

	var stats *models.AgentStats
	err = nrpkg.WithSegment(ctx, "TripRepo.ApplyOtpAttempt", func() error {
		applied, s, err := uc.tripRepo.ApplyOtpAttempt(ctx, attempt)
		if err != nil {
			return err
		}
		if !applied {
			return staleUpdate{from: trip.Status, to: next}
		}
		stats = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if checkErr != nil {
		logger.InfoCtx(ctx, "OTP rejected",
			logger.String("trip_id", trip.ID),
			logger.String("phase", string(phase)),
			logger.Int("attempts", record.Attempts+1),
			logger.Int("attempts_left", attemptsLeft(uc.otp.MaxAttempts(), record.Attempts+1)),
			logger.Err(checkErr))
		return nil, checkErr
	}

	verified := models.OtpRecord{Attempts: record.Attempts + 1, Verified: true, ExpiresAt: record.ExpiresAt}
	if phase == models.OtpPhasePickup {
		trip.PickupOtp = verified
		trip.StartedAt = &now
	} else {
		trip.DropOtp = verified
	}
	trip.Status = next
	trip.RequesterStatus = next.RequesterStatus()
	trip.UpdatedAt = now

	logger.InfoCtx(ctx, "OTP verified",
		logger.String("trip_id", trip.ID),
		logger.String("phase", string(phase)),
		logger.String("status", string(next)))

	result := &models.VerifyOtpResult{Trip: trip}
	if next == models.TripStatusCompleted {
		trip.CompletedAt = &now
		uc.afterSettlement(ctx, trip, attempt.Settlement, stats)
		result.Stats = stats
		return result, nil
	}

	uc.notifyStatus(ctx, trip)
	return result, nil
}

// ResendOtp replaces a phase code; the previous code stops working and the
// attempt counter starts over.
func (uc *tripUC) ResendOtp(ctx context.Context, req models.ResendOtpRequest) (*models.OtpResponse, error) {
	trip, tk, err := uc.loadAssigned(ctx, req.TripID, req.AgentID)
	if err != nil {
		return nil, err
	}
	phase, err := resolvePhase(tk, req.Phase, trip.Status)
	if err != nil {
		return nil, err
	}
	if !containsStatus(resendStatuses[phase], trip.Status) {
		return nil, apperror.InvalidTransition(string(trip.Status), string(gateStatus[phase]))
	}

	issue, err := uc.otp.Issue(phase)
	if err != nil {
		return nil, err
	}
	ok, err := uc.tripRepo.ReissueOtp(ctx, trip.ID, trip.Status, *issue)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidTransition(string(trip.Status), string(gateStatus[phase]))
	}

	logger.InfoCtx(ctx, "OTP reissued",
		logger.String("trip_id", trip.ID),
		logger.String("phase", string(phase)))

	return &models.OtpResponse{
		TripID:    trip.ID,
		Phase:     phase,
		Otp:       issue.Code,
		ExpiresAt: issue.ExpiresAt,
	}, nil
}

// CancelTrip cancels a non-terminal trip on behalf of its requester or its
// assigned agent. Cancelling a cancelled trip succeeds without side effects.
func (uc *tripUC) CancelTrip(ctx context.Context, req models.CancelTripRequest) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	byRequester := trip.RequesterID == req.ActorID
	if !byRequester && !trip.IsAssignedTo(req.ActorID) {
		return nil, apperror.Forbidden("only the requester or the assigned agent can cancel this trip")
	}

	switch trip.Status {
	case models.TripStatusCancelled:
		trip.RequesterStatus = trip.Status.RequesterStatus()
		return trip, nil
	case models.TripStatusCompleted:
		return nil, apperror.InvalidTransition(string(trip.Status), string(models.TripStatusCancelled))
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "cancelled by agent"
		if byRequester {
			reason = "cancelled by requester"
		}
	}

	now := uc.clock.Now()
	ok, releasedAgent, err := uc.tripRepo.CancelTrip(ctx, trip.ID, reason, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := uc.tripRepo.GetTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		if current.Status == models.TripStatusCancelled {
			current.RequesterStatus = current.Status.RequesterStatus()
			return current, nil
		}
		return nil, apperror.InvalidTransition(string(current.Status), string(models.TripStatusCancelled))
	}

	logger.InfoCtx(ctx, "Trip cancelled",
		logger.String("trip_id", trip.ID),
		logger.String("actor_id", req.ActorID),
		logger.String("reason", reason))

	trip.Status = models.TripStatusCancelled
	trip.RequesterStatus = trip.Status.RequesterStatus()
	trip.CancelReason = reason
	trip.CancelledAt = &now
	trip.UpdatedAt = now

	event := models.TripCancelledEvent{TripID: trip.ID, Reason: reason}
	if releasedAgent != nil {
		uc.notifyAgent(ctx, *releasedAgent, constants.EventTripCancelled, event)
	} else {
		uc.withdrawOffer(ctx, trip.ID, "", constants.EventTripCancelled, event)
	}
	uc.notifyTrip(ctx, trip.ID, constants.EventTripCancelled, event)
	return trip, nil
}

func (uc *tripUC) loadAssigned(ctx context.Context, tripID, agentID string) (*models.Trip, kind.TripKind, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	if !trip.IsAssignedTo(agentID) {
		return nil, nil, apperror.Forbidden("trip is not assigned to this agent")
	}
	tk, err := kind.For(trip.Kind)
	if err != nil {
		return nil, nil, err
	}
	return trip, tk, nil
}

func (uc *tripUC) notifyStatus(ctx context.Context, trip *models.Trip) {
	uc.notifyTrip(ctx, trip.ID, constants.EventTripStatus, models.TripStatusEvent{
		TripID:          trip.ID,
		Status:          trip.Status,
		RequesterStatus: trip.RequesterStatus,
	})
}

// resolvePhase defaults the phase from the trip state and checks the kind uses it
func resolvePhase(tk kind.TripKind, phase models.OtpPhase, status models.TripStatus) (models.OtpPhase, error) {
	if phase == "" {
		phase = models.OtpPhasePickup
		if status == models.TripStatusEnRouteDrop || status == models.TripStatusAtDestination {
			phase = models.OtpPhaseDrop
		}
	}
	if !hasPhase(tk, phase) {
		return "", apperror.Validation("%s trips have no %s code", tk.Name(), phase)
	}
	return phase, nil
}

func hasPhase(tk kind.TripKind, phase models.OtpPhase) bool {
	for _, p := range tk.OTPPhases() {
		if p == phase {
			return true
		}
	}
	return false
}

// nextPhase is the phase after p, or p itself when p is the last one
func nextPhase(tk kind.TripKind, p models.OtpPhase) models.OtpPhase {
	phases := tk.OTPPhases()
	for i, phase := range phases {
		if phase == p && i+1 < len(phases) {
			return phases[i+1]
		}
	}
	return p
}

// nextStatus is where a verified phase code moves the trip
func nextStatus(tk kind.TripKind, p models.OtpPhase) models.TripStatus {
	if nextPhase(tk, p) == p {
		return models.TripStatusCompleted
	}
	return models.TripStatusEnRouteDrop
}

func containsStatus(statuses []models.TripStatus, s models.TripStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

func attemptsLeft(max, used int) int {
	if used >= max {
		return 0
	}
	return max - used
}
