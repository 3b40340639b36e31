package repository

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func tripColumnNames() []string {
	parts := strings.Split(tripColumns, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

// tripRows returns one trips row in the given status; agentID may be nil
func tripRows(id string, status models.TripStatus, agentID interface{}) *sqlmock.Rows {
	expires := testNow.Add(10 * time.Minute)
	return sqlmock.NewRows(tripColumnNames()).AddRow(
		id, "transport", "req-1", agentID, string(status),
		19.05, 72.86, "Dadar", 19.10, 72.90, "Bandra", "te7u3gzn3",
		[]byte(`{"transport":{"vehicle_class":"two-wheeler"}}`), "two-wheeler", "", "bike_ride", 6.2, int64(10440), "INR",
		"session-1", "$2a$04$hash", expires, 0, false,
		"", nil, 0, false, "",
		testNow, nil, nil, nil, nil, testNow,
	)
}

func TestGetTrip_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trips WHERE id = $1")).
		WithArgs("trip-1").
		WillReturnRows(tripRows("trip-1", models.TripStatusAccepted, "agent-1"))

	trip, err := repo.GetTrip(context.Background(), "trip-1")

	require.NoError(t, err)
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, models.TripKindTransport, trip.Kind)
	assert.Equal(t, models.TripStatusAccepted, trip.Status)
	assert.Equal(t, "assigned", trip.RequesterStatus)
	require.NotNil(t, trip.AgentID)
	assert.Equal(t, "agent-1", *trip.AgentID)
	require.NotNil(t, trip.Payload.Transport)
	assert.Equal(t, models.VehicleTwoWheeler, trip.Payload.Transport.VehicleClass)
	require.NotNil(t, trip.PickupOtp.ExpiresAt)
	assert.Nil(t, trip.DropOtp.ExpiresAt)
	assert.Equal(t, int64(10440), trip.FareEstimate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTrip_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trips WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	trip, err := repo.GetTrip(context.Background(), "missing")

	assert.Nil(t, trip)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateTrip(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	trip := &models.Trip{
		ID:          "trip-1",
		Kind:        models.TripKindParcel,
		RequesterID: "req-1",
		Status:      models.TripStatusOpen,
		Payload: models.TripPayload{Parcel: &models.ParcelPayload{
			VehicleClass: models.VehicleTwoWheeler, Urgency: models.UrgencyStandard, Description: "keys",
		}},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trips")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.CreateTrip(context.Background(), trip))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOpenTrips(t *testing.T) {
	t.Run("with geohash prefilter", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'open' AND LEFT(pickup_geohash, $1) = ANY($2)")).
			WithArgs(5, sqlmock.AnyArg()).
			WillReturnRows(tripRows("trip-1", models.TripStatusOpen, nil))

		result, err := repo.ListOpenTrips(context.Background(), 5, []string{"te7u3", "te7u6"})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Nil(t, result[0].AgentID)
		assert.Equal(t, "searching", result[0].RequesterStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without prefilter", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'open' ORDER BY created_at")).
			WillReturnRows(sqlmock.NewRows(tripColumnNames()))

		result, err := repo.ListOpenTrips(context.Background(), 0, nil)

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func testClaim() models.TripClaim {
	return models.TripClaim{
		TripID:       "trip-1",
		AgentID:      "agent-1",
		SessionToken: "session-1",
		At:           testNow,
		PickupOtp: models.OtpIssue{
			Phase:     models.OtpPhasePickup,
			Hash:      "$2a$04$hash",
			ExpiresAt: testNow.Add(10 * time.Minute),
		},
	}
}

func TestClaimTrip_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)
	claim := testClaim()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'open' AND agent_id IS NULL")).
		WithArgs(claim.TripID, claim.AgentID, claim.SessionToken, claim.At, claim.PickupOtp.Hash, claim.PickupOtp.ExpiresAt).
		WillReturnRows(tripRows("trip-1", models.TripStatusAccepted, "agent-1"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE agents SET active_trips = active_trips + 1")).
		WithArgs("agent-1", testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trip, err := repo.ClaimTrip(context.Background(), claim)

	require.NoError(t, err)
	assert.Equal(t, models.TripStatusAccepted, trip.Status)
	assert.True(t, trip.IsAssignedTo("agent-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimTrip_AlreadyTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'open' AND agent_id IS NULL")).
		WillReturnRows(sqlmock.NewRows(tripColumnNames()))
	mock.ExpectRollback()

	trip, err := repo.ClaimTrip(context.Background(), testClaim())

	assert.Nil(t, trip)
	assert.ErrorIs(t, err, apperror.ErrClaimRejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionTrip(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "applied", affected: 1, want: true},
		{name: "stale state", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewTripRepository(db)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE trips SET status = $4, updated_at = $5 WHERE id = $1 AND agent_id = $2 AND status = $3")).
				WithArgs("trip-1", "agent-1", "accepted", "en_route_pickup", testNow).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.TransitionTrip(context.Background(), "trip-1", "agent-1",
				models.TripStatusAccepted, models.TripStatusEnRoutePickup, testNow)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplyOtpAttempt_FailedAttemptOnlyCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE trips SET pickup_otp_attempts = pickup_otp_attempts + 1, updated_at = $4 " +
			"WHERE id = $1 AND status = $2 AND pickup_otp_attempts = $3 AND pickup_otp_verified = FALSE")).
		WithArgs("trip-1", "at_pickup", 2, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, stats, err := repo.ApplyOtpAttempt(context.Background(), models.OtpAttempt{
		TripID:           "trip-1",
		Phase:            models.OtpPhasePickup,
		FromStatus:       models.TripStatusAtPickup,
		ExpectedAttempts: 2,
		At:               testNow,
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOtpAttempt_PickupAdvancesWithoutDropCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE trips SET pickup_otp_attempts = pickup_otp_attempts + 1, updated_at = $4, " +
			"pickup_otp_verified = TRUE, status = $5, started_at = $4 " +
			"WHERE id = $1 AND status = $2 AND pickup_otp_attempts = $3 AND pickup_otp_verified = FALSE")).
		WithArgs("trip-1", "at_pickup", 0, testNow, "en_route_drop").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, _, err := repo.ApplyOtpAttempt(context.Background(), models.OtpAttempt{
		TripID:     "trip-1",
		Phase:      models.OtpPhasePickup,
		FromStatus: models.TripStatusAtPickup,
		Verified:   true,
		ToStatus:   models.TripStatusEnRouteDrop,
		At:         testNow,
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArriveAtGate(t *testing.T) {
	dropExpiry := testNow.Add(10 * time.Minute)
	arrival := models.GateArrival{
		TripID:     "trip-1",
		AgentID:    "agent-1",
		FromStatus: models.TripStatusEnRouteDrop,
		ToStatus:   models.TripStatusAtDestination,
		Otp:        models.OtpIssue{Phase: models.OtpPhaseDrop, Hash: "drop-hash", ExpiresAt: dropExpiry},
		At:         testNow,
	}

	t.Run("stores the drop code with the status", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(
			"drop_otp_hash = $6, drop_otp_expires_at = $7, drop_otp_attempts = 0, drop_otp_verified = FALSE")).
			WithArgs("trip-1", "agent-1", "en_route_drop", "at_destination", testNow, "drop-hash", dropExpiry).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.ArriveAtGate(context.Background(), arrival)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale status writes nothing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND agent_id = $2 AND status = $3")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.ArriveAtGate(context.Background(), arrival)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func testLedgerEntry() *models.LedgerEntry {
	return &models.LedgerEntry{
		ID:        "ledger-1",
		TripID:    "trip-1",
		AgentID:   "agent-1",
		Kind:      models.TripKindParcel,
		Fare:      1000,
		TakeHome:  700,
		Currency:  "INR",
		SettledAt: testNow,
	}
}

func statsRows(todayTrips int, earnings int64, active int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "today_trips", "today_earnings", "active_trips", "lifetime_trips", "rating"}).
		AddRow("agent-1", todayTrips, earnings, active, 41, 4.8)
}

func TestApplyOtpAttempt_CompletionSettlesInSameTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("drop_otp_verified = TRUE, status = $5, completed_at = $4 WHERE id = $1")).
		WithArgs("trip-1", "at_destination", 0, testNow, "completed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trip_ledger")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE agents SET")).
		WithArgs("agent-1", int64(700), testNow).
		WillReturnRows(statsRows(1, 700, 0))
	mock.ExpectCommit()

	ok, stats, err := repo.ApplyOtpAttempt(context.Background(), models.OtpAttempt{
		TripID:     "trip-1",
		Phase:      models.OtpPhaseDrop,
		FromStatus: models.TripStatusAtDestination,
		Verified:   true,
		ToStatus:   models.TripStatusCompleted,
		At:         testNow,
		Settlement: testLedgerEntry(),
	})

	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TodayTrips)
	assert.Equal(t, int64(700), stats.TodayEarnings)
	assert.Equal(t, 0, stats.ActiveTrips)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOtpAttempt_StaleAttemptWritesNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trips SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	ok, stats, err := repo.ApplyOtpAttempt(context.Background(), models.OtpAttempt{
		TripID:     "trip-1",
		Phase:      models.OtpPhaseDrop,
		FromStatus: models.TripStatusAtDestination,
		Verified:   true,
		ToStatus:   models.TripStatusCompleted,
		At:         testNow,
		Settlement: testLedgerEntry(),
	})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReissueOtp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)
	expiry := testNow.Add(10 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta("pickup_otp_hash = $3, pickup_otp_expires_at = $4, pickup_otp_attempts = 0")).
		WithArgs("trip-1", "at_pickup", "new-hash", expiry).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ReissueOtp(context.Background(), "trip-1", models.TripStatusAtPickup,
		models.OtpIssue{Phase: models.OtpPhasePickup, Hash: "new-hash", ExpiresAt: expiry})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTrip(t *testing.T) {
	t.Run("assigned trip releases agent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE trips SET status = 'cancelled'")).
			WithArgs("trip-1", "changed plans", testNow, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"agent_id"}).AddRow("agent-1"))
		mock.ExpectExec(regexp.QuoteMeta("active_trips = GREATEST(active_trips - 1, 0)")).
			WithArgs("agent-1", testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ok, agentID, err := repo.CancelTrip(context.Background(), "trip-1", "changed plans", testNow)

		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, agentID)
		assert.Equal(t, "agent-1", *agentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open trip has no agent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE trips SET status = 'cancelled'")).
			WillReturnRows(sqlmock.NewRows([]string{"agent_id"}).AddRow(nil))
		mock.ExpectCommit()

		ok, agentID, err := repo.CancelTrip(context.Background(), "trip-1", "", testNow)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, agentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("terminal trip is untouched", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE trips SET status = 'cancelled'")).
			WillReturnRows(sqlmock.NewRows([]string{"agent_id"}))
		mock.ExpectRollback()

		ok, agentID, err := repo.CancelTrip(context.Background(), "trip-1", "", testNow)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, agentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettle(t *testing.T) {
	t.Run("first settlement updates counters", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (trip_id) DO NOTHING")).
			WithArgs("ledger-1", "trip-1", "agent-1", "parcel",
				0.0, 0.0, "", 0.0, 0.0, "", int64(1000), int64(700), "INR", testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("today_earnings = today_earnings + $2")).
			WithArgs("agent-1", int64(700), testNow).
			WillReturnRows(statsRows(1, 700, 0))
		mock.ExpectCommit()

		stats, err := repo.Settle(context.Background(), testLedgerEntry())

		require.NoError(t, err)
		assert.Equal(t, &models.AgentStats{
			AgentID: "agent-1", TodayTrips: 1, TodayEarnings: 700, ActiveTrips: 0, LifetimeTrips: 41, Rating: 4.8,
		}, stats)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate settlement is rejected", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewTripRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (trip_id) DO NOTHING")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		stats, err := repo.Settle(context.Background(), testLedgerEntry())

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, apperror.ErrAlreadySettled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
