package usecase

import (
	"context"

	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/utils"
	"github.com/piresc/kirimin/services/trips/kind"
)

// UpsertAgent registers or updates an agent profile
func (uc *tripUC) UpsertAgent(ctx context.Context, req models.UpsertAgentRequest) (*models.Agent, error) {
	if req.ID == "" {
		return nil, apperror.Validation("agent id is required")
	}
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	class := kind.NormalizeClass(req.VehicleClass)
	if err := kind.ValidateAgentServices(class, req.Services); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, apperror.Validation("rating must be between 0 and 5")
	}

	agent, err := uc.agentRepo.UpsertAgent(ctx, &models.Agent{
		ID:              req.ID,
		Phone:           phone,
		VehicleClass:    class,
		VehicleSubclass: req.VehicleSubclass,
		Services:        req.Services,
		Approved:        req.Approved,
		Rating:          req.Rating,
		UpdatedAt:       uc.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Agent upserted",
		logger.String("agent_id", agent.ID),
		logger.String("vehicle_class", string(agent.VehicleClass)),
		logger.Bool("approved", agent.Approved))
	return agent, nil
}

// UpdateAgentLocation moves the agent in the geo index and refreshes its heartbeat
func (uc *tripUC) UpdateAgentLocation(ctx context.Context, update models.LocationUpdate) error {
	if update.AgentID == "" {
		return apperror.Validation("agent id is required")
	}
	if !utils.ValidCoordinates(update.Latitude, update.Longitude) {
		return apperror.Validation("latitude and longitude are invalid")
	}

	return uc.locationRepo.UpdateAgentLocation(ctx, update.AgentID, models.Location{
		Latitude:  update.Latitude,
		Longitude: update.Longitude,
		Timestamp: uc.clock.Now(),
	})
}

// SetAgentPresence records the advisory online flag on connect and disconnect
func (uc *tripUC) SetAgentPresence(ctx context.Context, agentID string, online bool) error {
	if err := uc.agentRepo.SetOnline(ctx, agentID, online); err != nil {
		return err
	}
	logger.DebugCtx(ctx, "Agent presence changed",
		logger.String("agent_id", agentID),
		logger.Bool("online", online))
	return nil
}
