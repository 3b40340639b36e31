package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/internal/utils"
	"github.com/piresc/kirimin/services/trips/kind"
)

// MatchAgents returns the eligible agents around a trip's pickup, nearest
// first, with ties going to the less busy and then the better rated agent.
func (uc *tripUC) MatchAgents(ctx context.Context, trip *models.Trip) ([]*models.AgentCandidate, error) {
	tk, err := kind.For(trip.Kind)
	if err != nil {
		return nil, err
	}

	origin := models.Location{Latitude: trip.Pickup.Latitude, Longitude: trip.Pickup.Longitude}
	nearby, err := nrpkg.WithSegmentAndReturn(ctx, "LocationRepo.FindNearbyAgents", func() ([]*models.NearbyAgent, error) {
		return uc.locationRepo.FindNearbyAgents(ctx, origin, uc.radiusKm)
	})
	if err != nil {
		return nil, err
	}
	if len(nearby) == 0 {
		return []*models.AgentCandidate{}, nil
	}

	ids := make([]string, 0, len(nearby))
	for _, n := range nearby {
		ids = append(ids, n.AgentID)
	}

	agents, err := uc.agentRepo.GetAgentsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	heartbeats, err := uc.locationRepo.GetHeartbeats(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	candidates := make([]*models.AgentCandidate, 0, len(nearby))
	for _, n := range nearby {
		agent, ok := byID[n.AgentID]
		if !ok || !agent.Online || !agent.Approved {
			continue
		}
		seen, ok := heartbeats[agent.ID]
		if !ok || now.Sub(seen) > uc.heartbeatTTL {
			continue
		}
		if err := kind.ValidateAgentServices(agent.VehicleClass, agent.Services); err != nil {
			logger.WarnCtx(ctx, "Agent excluded from matching",
				logger.String("agent_id", agent.ID),
				logger.Err(err))
			continue
		}
		if !eligible(ctx, tk, trip, agent) {
			continue
		}

		distance := utils.CalculateDistance(geoPoint(trip.Pickup), utils.GeoPoint{
			Latitude:  n.Location.Latitude,
			Longitude: n.Location.Longitude,
		})
		if distance > uc.radiusKm {
			continue
		}
		candidates = append(candidates, &models.AgentCandidate{Agent: agent, DistanceKm: roundKm(distance)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		if a.Agent.LifetimeTrips != b.Agent.LifetimeTrips {
			return a.Agent.LifetimeTrips < b.Agent.LifetimeTrips
		}
		return a.Agent.Rating > b.Agent.Rating
	})
	if len(candidates) > uc.maxCandidates {
		candidates = candidates[:uc.maxCandidates]
	}

	logger.DebugCtx(ctx, "Agents matched",
		logger.String("trip_id", trip.ID),
		logger.Int("nearby", len(nearby)),
		logger.Int("eligible", len(candidates)))
	return candidates, nil
}

// FindNearbyTrips lists the open trips within the query radius that the
// querying agent is eligible for, nearest first.
func (uc *tripUC) FindNearbyTrips(ctx context.Context, query models.NearbyTripsQuery) ([]*models.NearbyTrip, error) {
	if !utils.ValidCoordinates(query.Location.Latitude, query.Location.Longitude) {
		return nil, apperror.Validation("latitude and longitude are invalid")
	}
	radius := query.RadiusKm
	switch {
	case radius == 0:
		radius = uc.radiusKm
	case radius < 0 || radius > maxSearchRadiusKm:
		return nil, apperror.Validation("radiusKm must be between 0 and %.0f", maxSearchRadiusKm)
	}

	agent, err := uc.agentRepo.GetAgent(ctx, query.AgentID)
	if err != nil {
		return nil, err
	}
	if err := kind.ValidateAgentServices(agent.VehicleClass, agent.Services); err != nil {
		logger.WarnCtx(ctx, "Agent has an invalid service configuration",
			logger.String("agent_id", agent.ID),
			logger.Err(err))
		return nil, err
	}

	origin := utils.GeoPoint{Latitude: query.Location.Latitude, Longitude: query.Location.Longitude}
	precision, cells, _ := utils.CoveringCells(origin, radius)

	open, err := nrpkg.WithSegmentAndReturn(ctx, "TripRepo.ListOpenTrips", func() ([]*models.Trip, error) {
		return uc.tripRepo.ListOpenTrips(ctx, precision, cells)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*models.NearbyTrip, 0, len(open))
	for _, trip := range open {
		if query.Capability != "" && trip.ServiceTag != query.Capability {
			continue
		}
		tk, err := kind.For(trip.Kind)
		if err != nil {
			continue
		}
		distance := utils.CalculateDistance(origin, geoPoint(trip.Pickup))
		if distance > radius {
			continue
		}
		if !eligible(ctx, tk, trip, agent) {
			continue
		}
		trip.RequesterStatus = trip.Status.RequesterStatus()
		result = append(result, &models.NearbyTrip{Trip: trip, DistanceKm: roundKm(distance)})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	if len(result) > uc.maxCandidates {
		result = result[:uc.maxCandidates]
	}
	return result, nil
}

// eligible applies the capability filter. Vehicle class must match, the
// subclass is advisory only and the derived service tag must be offered,
// unless the kind accepts the agent's class outright.
func eligible(ctx context.Context, tk kind.TripKind, trip *models.Trip, agent *models.Agent) bool {
	if tk.AlwaysEligible(agent.VehicleClass) {
		return true
	}
	if kind.NormalizeClass(agent.VehicleClass) != kind.NormalizeClass(trip.VehicleClass) {
		return false
	}
	if trip.VehicleSubclass != "" && !strings.EqualFold(trip.VehicleSubclass, agent.VehicleSubclass) {
		logger.DebugCtx(ctx, "Vehicle subclass mismatch ignored",
			logger.String("trip_id", trip.ID),
			logger.String("agent_id", agent.ID),
			logger.String("requested", trip.VehicleSubclass),
			logger.String("offered", agent.VehicleSubclass))
	}
	return agent.HasService(trip.ServiceTag)
}
