package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
)

const tripColumns = `id, kind, requester_id, agent_id, status,
	pickup_lat, pickup_lng, pickup_address, drop_lat, drop_lng, drop_address, pickup_geohash,
	payload, vehicle_class, vehicle_subclass, service_tag, distance_km, fare_estimate, currency,
	session_token, pickup_otp_hash, pickup_otp_expires_at, pickup_otp_attempts, pickup_otp_verified,
	drop_otp_hash, drop_otp_expires_at, drop_otp_attempts, drop_otp_verified, cancel_reason,
	created_at, accepted_at, started_at, completed_at, cancelled_at, updated_at`

// tripRow mirrors the trips table
type tripRow struct {
	ID                 string             `db:"id"`
	Kind               string             `db:"kind"`
	RequesterID        string             `db:"requester_id"`
	AgentID            sql.NullString     `db:"agent_id"`
	Status             string             `db:"status"`
	PickupLat          float64            `db:"pickup_lat"`
	PickupLng          float64            `db:"pickup_lng"`
	PickupAddress      string             `db:"pickup_address"`
	DropLat            float64            `db:"drop_lat"`
	DropLng            float64            `db:"drop_lng"`
	DropAddress        string             `db:"drop_address"`
	PickupGeohash      string             `db:"pickup_geohash"`
	Payload            models.TripPayload `db:"payload"`
	VehicleClass       string             `db:"vehicle_class"`
	VehicleSubclass    string             `db:"vehicle_subclass"`
	ServiceTag         string             `db:"service_tag"`
	DistanceKm         float64            `db:"distance_km"`
	FareEstimate       int64              `db:"fare_estimate"`
	Currency           string             `db:"currency"`
	SessionToken       string             `db:"session_token"`
	PickupOtpHash      string             `db:"pickup_otp_hash"`
	PickupOtpExpiresAt sql.NullTime       `db:"pickup_otp_expires_at"`
	PickupOtpAttempts  int                `db:"pickup_otp_attempts"`
	PickupOtpVerified  bool               `db:"pickup_otp_verified"`
	DropOtpHash        string             `db:"drop_otp_hash"`
	DropOtpExpiresAt   sql.NullTime       `db:"drop_otp_expires_at"`
	DropOtpAttempts    int                `db:"drop_otp_attempts"`
	DropOtpVerified    bool               `db:"drop_otp_verified"`
	CancelReason       string             `db:"cancel_reason"`
	CreatedAt          time.Time          `db:"created_at"`
	AcceptedAt         sql.NullTime       `db:"accepted_at"`
	StartedAt          sql.NullTime       `db:"started_at"`
	CompletedAt        sql.NullTime       `db:"completed_at"`
	CancelledAt        sql.NullTime       `db:"cancelled_at"`
	UpdatedAt          time.Time          `db:"updated_at"`
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (r tripRow) toModel() *models.Trip {
	trip := &models.Trip{
		ID:              r.ID,
		Kind:            models.TripKind(r.Kind),
		RequesterID:     r.RequesterID,
		Status:          models.TripStatus(r.Status),
		Pickup:          models.Point{Latitude: r.PickupLat, Longitude: r.PickupLng, Address: r.PickupAddress},
		Drop:            models.Point{Latitude: r.DropLat, Longitude: r.DropLng, Address: r.DropAddress},
		Payload:         r.Payload,
		VehicleClass:    models.VehicleClass(r.VehicleClass),
		VehicleSubclass: r.VehicleSubclass,
		ServiceTag:      models.ServiceTag(r.ServiceTag),
		DistanceKm:      r.DistanceKm,
		FareEstimate:    r.FareEstimate,
		Currency:        r.Currency,
		PickupGeohash:   r.PickupGeohash,
		SessionToken:    r.SessionToken,
		PickupOtp: models.OtpRecord{
			Hash:      r.PickupOtpHash,
			ExpiresAt: nullTime(r.PickupOtpExpiresAt),
			Attempts:  r.PickupOtpAttempts,
			Verified:  r.PickupOtpVerified,
		},
		DropOtp: models.OtpRecord{
			Hash:      r.DropOtpHash,
			ExpiresAt: nullTime(r.DropOtpExpiresAt),
			Attempts:  r.DropOtpAttempts,
			Verified:  r.DropOtpVerified,
		},
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
		AcceptedAt:   nullTime(r.AcceptedAt),
		StartedAt:    nullTime(r.StartedAt),
		CompletedAt:  nullTime(r.CompletedAt),
		CancelledAt:  nullTime(r.CancelledAt),
		UpdatedAt:    r.UpdatedAt,
	}
	if r.AgentID.Valid {
		agentID := r.AgentID.String
		trip.AgentID = &agentID
	}
	trip.RequesterStatus = trip.Status.RequesterStatus()
	return trip
}

// otpPrefix maps a phase to its column prefix
func otpPrefix(phase models.OtpPhase) (string, error) {
	switch phase {
	case models.OtpPhasePickup:
		return "pickup_otp", nil
	case models.OtpPhaseDrop:
		return "drop_otp", nil
	default:
		return "", fmt.Errorf("unknown otp phase %q", phase)
	}
}

// TripRepo persists trips and the settlement ledger in Postgres
type TripRepo struct {
	db *sqlx.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sqlx.DB) *TripRepo {
	return &TripRepo{db: db}
}

// CreateTrip inserts a new trip
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			id, kind, requester_id, status,
			pickup_lat, pickup_lng, pickup_address, drop_lat, drop_lng, drop_address, pickup_geohash,
			payload, vehicle_class, vehicle_subclass, service_tag, distance_km, fare_estimate, currency,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.ExecContext(ctx, query,
		trip.ID,
		trip.Kind,
		trip.RequesterID,
		trip.Status,
		trip.Pickup.Latitude,
		trip.Pickup.Longitude,
		trip.Pickup.Address,
		trip.Drop.Latitude,
		trip.Drop.Longitude,
		trip.Drop.Address,
		trip.PickupGeohash,
		trip.Payload,
		trip.VehicleClass,
		trip.VehicleSubclass,
		trip.ServiceTag,
		trip.DistanceKm,
		trip.FareEstimate,
		trip.Currency,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID
func (r *TripRepo) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	var row tripRow
	if err := r.db.GetContext(ctx, &row, query, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("trip", tripID)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return row.toModel(), nil
}

// ListOpenTrips returns open trips whose pickup geohash starts with one of cells.
// An empty cells list returns every open trip.
func (r *TripRepo) ListOpenTrips(ctx context.Context, precision uint, cells []string) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = 'open'`
	args := []interface{}{}
	if len(cells) > 0 {
		query += ` AND LEFT(pickup_geohash, $1) = ANY($2)`
		args = append(args, int(precision), pq.Array(cells))
	}
	query += ` ORDER BY created_at`

	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list open trips: %w", err)
	}

	result := make([]*models.Trip, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}

// ClaimTrip binds an agent to an open, unassigned trip and issues the pickup
// OTP hash in the same statement. The agent's active-trip counter is
// incremented in the same transaction.
func (r *TripRepo) ClaimTrip(ctx context.Context, claim models.TripClaim) (*models.Trip, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE trips SET
			status = 'accepted', agent_id = $2, session_token = $3, accepted_at = $4, updated_at = $4,
			pickup_otp_hash = $5, pickup_otp_expires_at = $6, pickup_otp_attempts = 0, pickup_otp_verified = FALSE
		WHERE id = $1 AND status = 'open' AND agent_id IS NULL
		RETURNING ` + tripColumns

	var row tripRow
	err = tx.GetContext(ctx, &row, query,
		claim.TripID,
		claim.AgentID,
		claim.SessionToken,
		claim.At,
		claim.PickupOtp.Hash,
		claim.PickupOtp.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ClaimRejected("already taken")
		}
		return nil, fmt.Errorf("failed to claim trip: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE agents SET active_trips = active_trips + 1, updated_at = $2 WHERE id = $1`,
		claim.AgentID, claim.At)
	if err != nil {
		return nil, fmt.Errorf("failed to increment active trips: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NotFound("agent", claim.AgentID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}
	return row.toModel(), nil
}

// TransitionTrip moves a trip assigned to agentID from one status to another
func (r *TripRepo) TransitionTrip(ctx context.Context, tripID, agentID string, from, to models.TripStatus, at time.Time) (bool, error) {
	query := `UPDATE trips SET status = $4, updated_at = $5 WHERE id = $1 AND agent_id = $2 AND status = $3`

	res, err := r.db.ExecContext(ctx, query, tripID, agentID, from, to, at)
	if err != nil {
		return false, fmt.Errorf("failed to transition trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// ApplyOtpAttempt records one verification attempt. On a verified attempt it
// also advances the status and, when the attempt completes the trip, settles
// it in the same transaction.
func (r *TripRepo) ApplyOtpAttempt(ctx context.Context, attempt models.OtpAttempt) (bool, *models.AgentStats, error) {
	prefix, err := otpPrefix(attempt.Phase)
	if err != nil {
		return false, nil, err
	}

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	idArg, fromArg, expectedArg, atArg := arg(attempt.TripID), arg(attempt.FromStatus), arg(attempt.ExpectedAttempts), arg(attempt.At)
	sets := []string{
		fmt.Sprintf("%[1]s_attempts = %[1]s_attempts + 1", prefix),
		"updated_at = " + atArg,
	}

	if attempt.Verified {
		sets = append(sets,
			prefix+"_verified = TRUE",
			"status = "+arg(attempt.ToStatus),
		)
		if attempt.Phase == models.OtpPhasePickup {
			sets = append(sets, "started_at = "+atArg)
		}
		if attempt.ToStatus == models.TripStatusCompleted {
			sets = append(sets, "completed_at = "+atArg)
		}
	}

	query := fmt.Sprintf(
		"UPDATE trips SET %s WHERE id = %s AND status = %s AND %s_attempts = %s AND %s_verified = FALSE",
		strings.Join(sets, ", "), idArg, fromArg, prefix, expectedArg, prefix,
	)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, nil, fmt.Errorf("failed to record otp attempt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil, nil
	}

	var stats *models.AgentStats
	if attempt.Verified && attempt.Settlement != nil {
		stats, err = r.settleTx(ctx, tx, attempt.Settlement)
		if err != nil {
			return false, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, nil, fmt.Errorf("failed to commit otp attempt: %w", err)
	}
	return true, stats, nil
}

// ArriveAtGate moves the trip into a gate state and stores the gate's code in
// one conditional update
func (r *TripRepo) ArriveAtGate(ctx context.Context, arrival models.GateArrival) (bool, error) {
	prefix, err := otpPrefix(arrival.Otp.Phase)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		UPDATE trips SET
			status = $4, updated_at = $5,
			%[1]s_hash = $6, %[1]s_expires_at = $7, %[1]s_attempts = 0, %[1]s_verified = FALSE
		WHERE id = $1 AND agent_id = $2 AND status = $3`, prefix)

	res, err := r.db.ExecContext(ctx, query,
		arrival.TripID,
		arrival.AgentID,
		arrival.FromStatus,
		arrival.ToStatus,
		arrival.At,
		arrival.Otp.Hash,
		arrival.Otp.ExpiresAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record gate arrival: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// ReissueOtp replaces a phase code while the trip is still in status
func (r *TripRepo) ReissueOtp(ctx context.Context, tripID string, status models.TripStatus, issue models.OtpIssue) (bool, error) {
	prefix, err := otpPrefix(issue.Phase)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		UPDATE trips SET
			%[1]s_hash = $3, %[1]s_expires_at = $4, %[1]s_attempts = 0, %[1]s_verified = FALSE, updated_at = NOW()
		WHERE id = $1 AND status = $2`, prefix)

	res, err := r.db.ExecContext(ctx, query, tripID, status, issue.Hash, issue.ExpiresAt)
	if err != nil {
		return false, fmt.Errorf("failed to reissue otp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// CancelTrip cancels a non-terminal trip and releases the assigned agent's
// active-trip slot. It returns the agent that was assigned, if any.
func (r *TripRepo) CancelTrip(ctx context.Context, tripID, reason string, at time.Time) (bool, *string, error) {
	statuses := make([]string, 0, len(models.NonTerminalStatuses))
	for _, s := range models.NonTerminalStatuses {
		statuses = append(statuses, string(s))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE trips SET status = 'cancelled', cancel_reason = $2, cancelled_at = $3, updated_at = $3
		WHERE id = $1 AND status = ANY($4)
		RETURNING agent_id`

	var agentID sql.NullString
	if err := tx.QueryRowxContext(ctx, query, tripID, reason, at, pq.Array(statuses)).Scan(&agentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to cancel trip: %w", err)
	}

	var released *string
	if agentID.Valid {
		_, err := tx.ExecContext(ctx,
			`UPDATE agents SET active_trips = GREATEST(active_trips - 1, 0), updated_at = $2 WHERE id = $1`,
			agentID.String, at)
		if err != nil {
			return false, nil, fmt.Errorf("failed to release agent: %w", err)
		}
		released = &agentID.String
	}

	if err := tx.Commit(); err != nil {
		return false, nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return true, released, nil
}

// Settle appends the ledger entry and updates the agent's counters.
// A second settlement of the same trip returns an already_settled error.
func (r *TripRepo) Settle(ctx context.Context, entry *models.LedgerEntry) (*models.AgentStats, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stats, err := r.settleTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return stats, nil
}

func (r *TripRepo) settleTx(ctx context.Context, tx *sqlx.Tx, entry *models.LedgerEntry) (*models.AgentStats, error) {
	insert := `
		INSERT INTO trip_ledger (
			id, trip_id, agent_id, kind,
			pickup_lat, pickup_lng, pickup_address, drop_lat, drop_lng, drop_address,
			fare, take_home, currency, settled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (trip_id) DO NOTHING`

	res, err := tx.ExecContext(ctx, insert,
		entry.ID,
		entry.TripID,
		entry.AgentID,
		entry.Kind,
		entry.Pickup.Latitude,
		entry.Pickup.Longitude,
		entry.Pickup.Address,
		entry.Drop.Latitude,
		entry.Drop.Longitude,
		entry.Drop.Address,
		entry.Fare,
		entry.TakeHome,
		entry.Currency,
		entry.SettledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		logger.Warn("Duplicate settlement rejected", logger.String("trip_id", entry.TripID))
		return nil, apperror.AlreadySettled(entry.TripID)
	}

	update := `
		UPDATE agents SET
			today_trips = today_trips + 1,
			today_earnings = today_earnings + $2,
			active_trips = GREATEST(active_trips - 1, 0),
			lifetime_trips = lifetime_trips + 1,
			updated_at = $3
		WHERE id = $1
		RETURNING id, today_trips, today_earnings, active_trips, lifetime_trips, rating`

	var stats models.AgentStats
	if err := tx.GetContext(ctx, &stats, update, entry.AgentID, entry.TakeHome, entry.SettledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("agent", entry.AgentID)
		}
		return nil, fmt.Errorf("failed to update agent counters: %w", err)
	}
	return &stats, nil
}
