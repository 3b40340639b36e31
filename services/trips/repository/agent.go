package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/models"
)

const agentColumns = `id, phone, vehicle_class, vehicle_subclass, services, online, approved, rating,
	today_trips, today_earnings, active_trips, lifetime_trips, created_at, updated_at`

type agentRow struct {
	ID              string         `db:"id"`
	Phone           string         `db:"phone"`
	VehicleClass    string         `db:"vehicle_class"`
	VehicleSubclass string         `db:"vehicle_subclass"`
	Services        pq.StringArray `db:"services"`
	Online          bool           `db:"online"`
	Approved        bool           `db:"approved"`
	Rating          float64        `db:"rating"`
	TodayTrips      int            `db:"today_trips"`
	TodayEarnings   int64          `db:"today_earnings"`
	ActiveTrips     int            `db:"active_trips"`
	LifetimeTrips   int            `db:"lifetime_trips"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r agentRow) toModel() *models.Agent {
	services := make([]models.ServiceTag, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, models.ServiceTag(s))
	}
	return &models.Agent{
		ID:              r.ID,
		Phone:           r.Phone,
		VehicleClass:    models.VehicleClass(r.VehicleClass),
		VehicleSubclass: r.VehicleSubclass,
		Services:        services,
		Online:          r.Online,
		Approved:        r.Approved,
		Rating:          r.Rating,
		TodayTrips:      r.TodayTrips,
		TodayEarnings:   r.TodayEarnings,
		ActiveTrips:     r.ActiveTrips,
		LifetimeTrips:   r.LifetimeTrips,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// AgentRepo persists agents and their running counters
type AgentRepo struct {
	db *sqlx.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *sqlx.DB) *AgentRepo {
	return &AgentRepo{db: db}
}

// UpsertAgent creates or replaces an agent's profile; counters are left untouched
func (r *AgentRepo) UpsertAgent(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	services := make([]string, 0, len(agent.Services))
	for _, s := range agent.Services {
		services = append(services, string(s))
	}

	query := `
		INSERT INTO agents (id, phone, vehicle_class, vehicle_subclass, services, approved, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET
			phone = EXCLUDED.phone,
			vehicle_class = EXCLUDED.vehicle_class,
			vehicle_subclass = EXCLUDED.vehicle_subclass,
			services = EXCLUDED.services,
			approved = EXCLUDED.approved,
			rating = EXCLUDED.rating,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + agentColumns

	var row agentRow
	err := r.db.GetContext(ctx, &row, query,
		agent.ID,
		agent.Phone,
		agent.VehicleClass,
		agent.VehicleSubclass,
		pq.Array(services),
		agent.Approved,
		agent.Rating,
		agent.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperror.Validation("phone %s is already registered", agent.Phone)
		}
		return nil, fmt.Errorf("failed to upsert agent: %w", err)
	}
	return row.toModel(), nil
}

// GetAgent retrieves an agent by ID
func (r *AgentRepo) GetAgent(ctx context.Context, agentID string) (*models.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	var row agentRow
	if err := r.db.GetContext(ctx, &row, query, agentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("agent", agentID)
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return row.toModel(), nil
}

// GetAgentsByIDs retrieves every agent whose ID is in agentIDs; unknown IDs are skipped
func (r *AgentRepo) GetAgentsByIDs(ctx context.Context, agentIDs []string) ([]*models.Agent, error) {
	if len(agentIDs) == 0 {
		return []*models.Agent{}, nil
	}

	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ANY($1)`

	var rows []agentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(agentIDs)); err != nil {
		return nil, fmt.Errorf("failed to get agents: %w", err)
	}

	result := make([]*models.Agent, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}

// SetOnline records the agent's presence flag
func (r *AgentRepo) SetOnline(ctx context.Context, agentID string, online bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE agents SET online = $2, updated_at = NOW() WHERE id = $1`, agentID, online)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("agent", agentID)
	}
	return nil
}

// GetStats returns the agent's running counters
func (r *AgentRepo) GetStats(ctx context.Context, agentID string) (*models.AgentStats, error) {
	query := `SELECT id, today_trips, today_earnings, active_trips, lifetime_trips, rating FROM agents WHERE id = $1`

	var stats models.AgentStats
	if err := r.db.GetContext(ctx, &stats, query, agentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("agent", agentID)
		}
		return nil, fmt.Errorf("failed to get agent stats: %w", err)
	}
	return &stats, nil
}
