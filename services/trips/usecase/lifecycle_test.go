package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dadar = models.Point{Latitude: 19.05, Longitude: 72.86, Address: "Dadar"}

var allStatuses = []models.TripStatus{
	models.TripStatusCreated,
	models.TripStatusOpen,
	models.TripStatusAccepted,
	models.TripStatusEnRoutePickup,
	models.TripStatusAtPickup,
	models.TripStatusEnRouteDrop,
	models.TripStatusAtDestination,
	models.TripStatusCompleted,
	models.TripStatusCancelled,
}

func assignedTrip(status models.TripStatus) *models.Trip {
	trip := transportTrip("trip-1", status, dadar)
	trip.AgentID = strPtr("agent-1")
	return trip
}

func withPickupCode(t *testing.T, d *testDeps, trip *models.Trip) {
	issue, err := d.otp.Issue(models.OtpPhasePickup)
	require.NoError(t, err)
	expires := issue.ExpiresAt
	trip.PickupOtp = models.OtpRecord{Hash: issue.Hash, ExpiresAt: &expires}
}

func verifyReq(code string) models.VerifyOtpRequest {
	return models.VerifyOtpRequest{TripID: "trip-1", AgentID: "agent-1", Code: code, Phase: models.OtpPhasePickup}
}

func TestVerifyOtp_ExpiredCodeThenResend(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "482913", "719204", "550011")
	d.quietGateway()
	ctx := context.Background()

	trip := assignedTrip(models.TripStatusAtPickup)
	withPickupCode(t, d, trip)
	store := newTripStore(trip)
	store.wire(d.tripRepo)

	// Act: correct code after eleven minutes
	d.clock.Advance(11 * time.Minute)
	_, err := d.uc.VerifyOtp(ctx, verifyReq("482913"))

	// Assert
	assert.True(t, errors.Is(err, apperror.InvalidOtp(apperror.ReasonExpired)))
	assert.Equal(t, 1, store.get().PickupOtp.Attempts)
	assert.Equal(t, models.TripStatusAtPickup, store.get().Status)

	// Act: resend
	resent, err := d.uc.ResendOtp(ctx, models.ResendOtpRequest{TripID: "trip-1", AgentID: "agent-1", Phase: models.OtpPhasePickup})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "719204", resent.Otp)
	assert.Equal(t, d.clock.Now().Add(10*time.Minute), resent.ExpiresAt)
	assert.Equal(t, 0, store.get().PickupOtp.Attempts)

	// Act: the replaced code no longer works
	_, err = d.uc.VerifyOtp(ctx, verifyReq("482913"))

	// Assert
	assert.True(t, errors.Is(err, apperror.InvalidOtp(apperror.ReasonWrongCode)))

	// Act: the new code advances the trip
	result, err := d.uc.VerifyOtp(ctx, verifyReq("719204"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusEnRouteDrop, result.Trip.Status)
	assert.Equal(t, "en route", result.Trip.RequesterStatus)
	assert.NotNil(t, result.Trip.StartedAt)

	stored := store.get()
	assert.Equal(t, models.TripStatusEnRouteDrop, stored.Status)
	assert.True(t, stored.PickupOtp.Verified)
	assert.Empty(t, stored.DropOtp.Hash, "the drop code waits for arrival at the destination")
}

func TestDropCode_IssuedOnArrivalAfterLongRide(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "482913", "550011")
	d.quietGateway()
	ctx := context.Background()
	transition := models.TransitionRequest{TripID: "trip-1", AgentID: "agent-1"}

	trip := assignedTrip(models.TripStatusAtPickup)
	withPickupCode(t, d, trip)
	store := newTripStore(trip)
	store.wire(d.tripRepo)
	d.gw.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.uc.VerifyOtp(ctx, verifyReq("482913"))
	require.NoError(t, err)

	// Act: a ride longer than the code lifetime
	d.clock.Advance(45 * time.Minute)
	arrival, err := d.uc.ReachDestination(ctx, transition)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "550011", arrival.DropOtp)
	assert.Equal(t, d.clock.Now().Add(10*time.Minute), arrival.OtpExpiresAt)
	assert.Equal(t, models.TripStatusAtDestination, arrival.Trip.Status)
	assert.Equal(t, models.TripStatusAtDestination, store.get().Status)
	assert.Equal(t, 0, store.get().DropOtp.Attempts)

	// Act: the freshly issued code completes the trip
	d.clock.Advance(2 * time.Minute)
	result, err := d.uc.VerifyOtp(ctx, models.VerifyOtpRequest{TripID: "trip-1", AgentID: "agent-1", Code: "550011"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, result.Trip.Status)
	assert.True(t, store.get().DropOtp.Verified)
}

func TestResendOtp_DropCodeOnlyAtDestination(t *testing.T) {
	d := newTestDeps(t, testConfig())
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusEnRouteDrop), nil)

	_, err := d.uc.ResendOtp(context.Background(), models.ResendOtpRequest{TripID: "trip-1", AgentID: "agent-1", Phase: models.OtpPhaseDrop})

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestVerifyOtp_LocksAfterFiveFailures(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "482913", "719204", "550011")
	d.quietGateway()
	ctx := context.Background()

	trip := assignedTrip(models.TripStatusAtPickup)
	withPickupCode(t, d, trip)
	store := newTripStore(trip)
	store.wire(d.tripRepo)

	// Act
	for i := 0; i < 5; i++ {
		_, err := d.uc.VerifyOtp(ctx, verifyReq("000000"))
		require.True(t, errors.Is(err, apperror.InvalidOtp(apperror.ReasonWrongCode)), "attempt %d", i+1)
	}
	_, err := d.uc.VerifyOtp(ctx, verifyReq("482913"))

	// Assert
	assert.True(t, errors.Is(err, apperror.InvalidOtp(apperror.ReasonLocked)))
	assert.Equal(t, 5, store.get().PickupOtp.Attempts, "a locked code records no further attempts")

	_, err = d.uc.ResendOtp(ctx, models.ResendOtpRequest{TripID: "trip-1", AgentID: "agent-1", Phase: models.OtpPhasePickup})
	require.NoError(t, err)

	result, err := d.uc.VerifyOtp(ctx, verifyReq("719204"))
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusEnRouteDrop, result.Trip.Status)
}

func TestVerifyOtp_InvalidFormat(t *testing.T) {
	d := newTestDeps(t, testConfig())

	_, err := d.uc.VerifyOtp(context.Background(), verifyReq("12ab"))

	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestVerifyOtp_MoveCompletesAndSettlesAtPickup(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "482913")
	ctx := context.Background()

	trip := assignedTrip(models.TripStatusAtPickup)
	trip.Kind = models.TripKindMove
	trip.VehicleClass = models.VehicleTruck
	trip.ServiceTag = models.ServiceHouseholdMove
	trip.Payload = models.TripPayload{Move: &models.MovePayload{VehicleClass: models.VehicleTruck, Items: map[string]int{"sofa": 1}}}
	withPickupCode(t, d, trip)

	stats := &models.AgentStats{AgentID: "agent-1", TodayTrips: 1, TodayEarnings: 700, ActiveTrips: 0, LifetimeTrips: 21}
	var applied models.OtpAttempt

	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.tripRepo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt models.OtpAttempt) (bool, *models.AgentStats, error) {
			applied = attempt
			return true, stats, nil
		})
	d.gw.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil)
	d.gw.EXPECT().NotifyAgent(gomock.Any(), "agent-1", constants.EventStatsUpdated, stats).Return(nil)
	d.gw.EXPECT().NotifyTrip(gomock.Any(), "trip-1", constants.EventTripCompleted, models.TripCompletedEvent{
		TripID:   "trip-1",
		Fare:     1000,
		Currency: "INR",
	}).Return(nil)

	// Act
	result, err := d.uc.VerifyOtp(ctx, verifyReq("482913"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, result.Trip.Status)
	assert.NotNil(t, result.Trip.CompletedAt)
	assert.Equal(t, stats, result.Stats)

	assert.True(t, applied.Verified)
	assert.Equal(t, models.TripStatusCompleted, applied.ToStatus)
	require.NotNil(t, applied.Settlement)
	assert.Equal(t, "trip-1", applied.Settlement.TripID)
	assert.Equal(t, "agent-1", applied.Settlement.AgentID)
	assert.Equal(t, int64(1000), applied.Settlement.Fare)
	assert.Equal(t, int64(700), applied.Settlement.TakeHome)
}

func TestVerifyOtp_DropCodeCompletesTransport(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "550011")
	ctx := context.Background()

	trip := assignedTrip(models.TripStatusAtDestination)
	issue, err := d.otp.Issue(models.OtpPhaseDrop)
	require.NoError(t, err)
	trip.PickupOtp = models.OtpRecord{Verified: true, Attempts: 1}
	trip.DropOtp = models.OtpRecord{Hash: issue.Hash, ExpiresAt: &issue.ExpiresAt}

	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
	d.tripRepo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt models.OtpAttempt) (bool, *models.AgentStats, error) {
			assert.Equal(t, models.OtpPhaseDrop, attempt.Phase)
			assert.Equal(t, models.TripStatusCompleted, attempt.ToStatus)
			assert.NotNil(t, attempt.Settlement)
			return true, &models.AgentStats{AgentID: "agent-1", TodayTrips: 1, TodayEarnings: 700}, nil
		})
	d.gw.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(errors.New("nsq unavailable"))
	d.quietGateway()

	// Act
	result, err := d.uc.VerifyOtp(ctx, models.VerifyOtpRequest{TripID: "trip-1", AgentID: "agent-1", Code: "550011"})

	// Assert
	require.NoError(t, err, "a failed settlement event does not fail the completion")
	assert.Equal(t, models.TripStatusCompleted, result.Trip.Status)
	assert.True(t, result.Trip.DropOtp.Verified)
}

func TestVerifyOtp_RetriesStaleConditionalUpdate(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig(), "482913", "550011")
	d.quietGateway()

	trip := assignedTrip(models.TripStatusAtPickup)
	withPickupCode(t, d, trip)

	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil).Times(2)
	gomock.InOrder(
		d.tripRepo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).Return(false, nil, nil),
		d.tripRepo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).Return(true, nil, nil),
	)

	// Act
	result, err := d.uc.VerifyOtp(context.Background(), verifyReq("482913"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusEnRouteDrop, result.Trip.Status)
}

func TestVerifyOtp_GivesUpAfterRepeatedConflicts(t *testing.T) {
	d := newTestDeps(t, testConfig(), "482913", "550011")

	trip := assignedTrip(models.TripStatusAtPickup)
	withPickupCode(t, d, trip)

	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil).Times(maxCASRetries)
	d.tripRepo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).Return(false, nil, nil).Times(maxCASRetries)

	_, err := d.uc.VerifyOtp(context.Background(), verifyReq("482913"))

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestVerifyOtp_NotAssignedAgent(t *testing.T) {
	d := newTestDeps(t, testConfig())
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusAtPickup), nil)

	_, err := d.uc.VerifyOtp(context.Background(), models.VerifyOtpRequest{TripID: "trip-1", AgentID: "agent-2", Code: "123456"})

	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestVerifyOtp_MoveHasNoDropPhase(t *testing.T) {
	d := newTestDeps(t, testConfig())
	trip := assignedTrip(models.TripStatusAtPickup)
	trip.Kind = models.TripKindMove
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)

	_, err := d.uc.VerifyOtp(context.Background(), models.VerifyOtpRequest{
		TripID: "trip-1", AgentID: "agent-1", Code: "123456", Phase: models.OtpPhaseDrop,
	})

	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestStateMachine_OnlyEnumeratedTransitionsApply(t *testing.T) {
	type op func(ctx context.Context, d *testDeps) error
	type expectation func(d *testDeps, from models.TripStatus)

	transitionTo := func(to models.TripStatus) expectation {
		return func(d *testDeps, from models.TripStatus) {
			d.tripRepo.EXPECT().
				TransitionTrip(gomock.Any(), "trip-1", "agent-1", from, to, testStart).
				Return(true, nil)
		}
	}

	transition := models.TransitionRequest{TripID: "trip-1", AgentID: "agent-1"}
	ops := []struct {
		name    string
		expect  expectation
		allowed []models.TripStatus
		call    op
	}{
		{
			name:    "depart",
			expect:  transitionTo(models.TripStatusEnRoutePickup),
			allowed: []models.TripStatus{models.TripStatusAccepted},
			call: func(ctx context.Context, d *testDeps) error {
				_, err := d.uc.Depart(ctx, transition)
				return err
			},
		},
		{
			name:    "reached pickup",
			expect:  transitionTo(models.TripStatusAtPickup),
			allowed: []models.TripStatus{models.TripStatusAccepted, models.TripStatusEnRoutePickup},
			call: func(ctx context.Context, d *testDeps) error {
				_, err := d.uc.ReachPickup(ctx, transition)
				return err
			},
		},
		{
			name: "reached destination",
			expect: func(d *testDeps, from models.TripStatus) {
				d.tripRepo.EXPECT().ArriveAtGate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, arrival models.GateArrival) (bool, error) {
						assert.Equal(t, from, arrival.FromStatus)
						assert.Equal(t, models.TripStatusAtDestination, arrival.ToStatus)
						assert.Equal(t, models.OtpPhaseDrop, arrival.Otp.Phase)
						return true, nil
					})
			},
			allowed: []models.TripStatus{models.TripStatusEnRouteDrop},
			call: func(ctx context.Context, d *testDeps) error {
				_, err := d.uc.ReachDestination(ctx, transition)
				return err
			},
		},
	}

	for _, o := range ops {
		for _, status := range allStatuses {
			o, status := o, status
			t.Run(o.name+" from "+string(status), func(t *testing.T) {
				// Arrange
				d := newTestDeps(t, testConfig())
				d.quietGateway()
				d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(status), nil)

				legal := containsStatus(o.allowed, status)
				if legal {
					o.expect(d, status)
				}

				// Act
				err := o.call(context.Background(), d)

				// Assert
				if legal {
					assert.NoError(t, err)
				} else {
					assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "got %v", err)
				}
			})
		}
	}
}

func TestVerifyOtp_OnlyAtGateState(t *testing.T) {
	for _, status := range allStatuses {
		if status == models.TripStatusAtPickup {
			continue
		}
		status := status
		t.Run(string(status), func(t *testing.T) {
			d := newTestDeps(t, testConfig())
			d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(status), nil)

			_, err := d.uc.VerifyOtp(context.Background(), verifyReq("123456"))

			assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "got %v", err)
		})
	}
}

func TestTransition_StaleUpdateIsRejected(t *testing.T) {
	d := newTestDeps(t, testConfig())
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusAccepted), nil)
	d.tripRepo.EXPECT().
		TransitionTrip(gomock.Any(), "trip-1", "agent-1", models.TripStatusAccepted, models.TripStatusEnRoutePickup, testStart).
		Return(false, nil)

	_, err := d.uc.Depart(context.Background(), models.TransitionRequest{TripID: "trip-1", AgentID: "agent-1"})

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestReachPickup_NotifiesTripRoom(t *testing.T) {
	// Arrange
	d := newTestDeps(t, testConfig())
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusEnRoutePickup), nil)
	d.tripRepo.EXPECT().
		TransitionTrip(gomock.Any(), "trip-1", "agent-1", models.TripStatusEnRoutePickup, models.TripStatusAtPickup, testStart).
		Return(true, nil)
	d.gw.EXPECT().NotifyTrip(gomock.Any(), "trip-1", constants.EventTripStatus, models.TripStatusEvent{
		TripID:          "trip-1",
		Status:          models.TripStatusAtPickup,
		RequesterStatus: "assigned",
	}).Return(errors.New("not connected"))

	// Act
	trip, err := d.uc.ReachPickup(context.Background(), models.TransitionRequest{TripID: "trip-1", AgentID: "agent-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusAtPickup, trip.Status)
}

func TestReachDestination_SinglePhaseKindIsInvalid(t *testing.T) {
	d := newTestDeps(t, testConfig())
	trip := assignedTrip(models.TripStatusEnRouteDrop)
	trip.Kind = models.TripKindMove
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)

	_, err := d.uc.ReachDestination(context.Background(), models.TransitionRequest{TripID: "trip-1", AgentID: "agent-1"})

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestResendOtp_WrongState(t *testing.T) {
	d := newTestDeps(t, testConfig())
	d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusEnRouteDrop), nil)

	_, err := d.uc.ResendOtp(context.Background(), models.ResendOtpRequest{TripID: "trip-1", AgentID: "agent-1", Phase: models.OtpPhasePickup})

	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestCancelTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("requester before accept withdraws offers", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		trip := transportTrip("trip-1", models.TripStatusOpen, dadar)
		event := models.TripCancelledEvent{TripID: "trip-1", Reason: "changed plans"}

		d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)
		d.tripRepo.EXPECT().CancelTrip(gomock.Any(), "trip-1", "changed plans", testStart).Return(true, nil, nil)
		d.locationRepo.EXPECT().GetCandidatePool(gomock.Any(), "trip-1").Return([]string{"agent-1", "agent-2"}, nil)
		d.gw.EXPECT().NotifyAgent(gomock.Any(), "agent-1", constants.EventTripCancelled, event).Return(nil)
		d.gw.EXPECT().NotifyAgent(gomock.Any(), "agent-2", constants.EventTripCancelled, event).Return(nil)
		d.locationRepo.EXPECT().DeleteCandidatePool(gomock.Any(), "trip-1").Return(nil)
		d.gw.EXPECT().NotifyTrip(gomock.Any(), "trip-1", constants.EventTripCancelled, event).Return(nil)

		got, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "req-1", Reason: "changed plans"})

		require.NoError(t, err)
		assert.Equal(t, models.TripStatusCancelled, got.Status)
		assert.Equal(t, "cancelled", got.RequesterStatus)
		assert.NotNil(t, got.CancelledAt)
	})

	t.Run("after accept notifies the released agent", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		event := models.TripCancelledEvent{TripID: "trip-1", Reason: "cancelled by requester"}

		d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusEnRoutePickup), nil)
		d.tripRepo.EXPECT().CancelTrip(gomock.Any(), "trip-1", "cancelled by requester", testStart).Return(true, strPtr("agent-1"), nil)
		d.gw.EXPECT().NotifyAgent(gomock.Any(), "agent-1", constants.EventTripCancelled, event).Return(nil)
		d.gw.EXPECT().NotifyTrip(gomock.Any(), "trip-1", constants.EventTripCancelled, event).Return(nil)

		_, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "req-1"})

		require.NoError(t, err)
	})

	t.Run("already cancelled is a no-op", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusCancelled), nil)

		got, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "agent-1"})

		require.NoError(t, err)
		assert.Equal(t, models.TripStatusCancelled, got.Status)
	})

	t.Run("completed trip cannot be cancelled", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusCompleted), nil)

		_, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "req-1"})

		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusAccepted), nil)

		_, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "agent-9"})

		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("lost race against another cancel", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		gomock.InOrder(
			d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusAccepted), nil),
			d.tripRepo.EXPECT().CancelTrip(gomock.Any(), "trip-1", "cancelled by agent", testStart).Return(false, nil, nil),
			d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusCancelled), nil),
		)

		got, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "agent-1"})

		require.NoError(t, err)
		assert.Equal(t, models.TripStatusCancelled, got.Status)
	})

	t.Run("lost race against completion", func(t *testing.T) {
		d := newTestDeps(t, testConfig())
		gomock.InOrder(
			d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusAtDestination), nil),
			d.tripRepo.EXPECT().CancelTrip(gomock.Any(), "trip-1", gomock.Any(), testStart).Return(false, nil, nil),
			d.tripRepo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(assignedTrip(models.TripStatusCompleted), nil),
		)

		_, err := d.uc.CancelTrip(ctx, models.CancelTripRequest{TripID: "trip-1", ActorID: "req-1"})

		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})
}

func TestAttemptsLeft(t *testing.T) {
	assert.Equal(t, 4, attemptsLeft(5, 1))
	assert.Equal(t, 0, attemptsLeft(5, 5))
	assert.Equal(t, 0, attemptsLeft(5, 7))
}
