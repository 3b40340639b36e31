package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/database"
	"github.com/piresc/kirimin/internal/pkg/models"
)

const (
	// LocationTTL is how long an agent's last heartbeat is kept
	LocationTTL = 24 * time.Hour
)

// LocationRepo keeps the agent geo index, heartbeats and trip candidate pools in Redis
type LocationRepo struct {
	redisClient *database.RedisClient
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(redisClient *database.RedisClient) *LocationRepo {
	return &LocationRepo{redisClient: redisClient}
}

// UpdateAgentLocation moves the agent in the geo index and records the heartbeat
func (r *LocationRepo) UpdateAgentLocation(ctx context.Context, agentID string, location models.Location) error {
	locationKey := fmt.Sprintf(constants.KeyAgentLocation, agentID)

	_, err := r.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.GeoAdd(ctx, constants.KeyAgentGeo, &redis.GeoLocation{
			Name:      agentID,
			Longitude: location.Longitude,
			Latitude:  location.Latitude,
		})
		pipe.HSet(ctx, locationKey, map[string]interface{}{
			constants.FieldLatitude:  strconv.FormatFloat(location.Latitude, 'f', -1, 64),
			constants.FieldLongitude: strconv.FormatFloat(location.Longitude, 'f', -1, 64),
			constants.FieldTimestamp: strconv.FormatInt(location.Timestamp.Unix(), 10),
		})
		pipe.Expire(ctx, locationKey, LocationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store agent location: %w", err)
	}
	return nil
}

// FindNearbyAgents returns agents in the geo index within radiusKm, nearest first
func (r *LocationRepo) FindNearbyAgents(ctx context.Context, location models.Location, radiusKm float64) ([]*models.NearbyAgent, error) {
	hits, err := r.redisClient.GeoRadius(ctx, constants.KeyAgentGeo, location.Longitude, location.Latitude, radiusKm, "km")
	if err != nil {
		return nil, fmt.Errorf("failed to query agent geo index: %w", err)
	}

	nearby := make([]*models.NearbyAgent, 0, len(hits))
	for _, hit := range hits {
		nearby = append(nearby, &models.NearbyAgent{
			AgentID: hit.Name,
			Location: models.Location{
				Latitude:  hit.Latitude,
				Longitude: hit.Longitude,
			},
			DistanceKm: hit.Dist,
		})
	}
	return nearby, nil
}

// GetHeartbeats returns the last heartbeat time of each agent that has one
func (r *LocationRepo) GetHeartbeats(ctx context.Context, agentIDs []string) (map[string]time.Time, error) {
	heartbeats := make(map[string]time.Time, len(agentIDs))
	if len(agentIDs) == 0 {
		return heartbeats, nil
	}

	cmds := make([]*redis.StringCmd, len(agentIDs))
	_, err := r.redisClient.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range agentIDs {
			cmds[i] = pipe.HGet(ctx, fmt.Sprintf(constants.KeyAgentLocation, id), constants.FieldTimestamp)
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read heartbeats: %w", err)
	}

	for i, cmd := range cmds {
		ts, err := cmd.Int64()
		if err != nil {
			continue
		}
		heartbeats[agentIDs[i]] = time.Unix(ts, 0).UTC()
	}
	return heartbeats, nil
}

// SaveCandidatePool stores the agents a trip was pushed to
func (r *LocationRepo) SaveCandidatePool(ctx context.Context, tripID string, agentIDs []string, ttl time.Duration) error {
	if len(agentIDs) == 0 {
		return nil
	}
	key := fmt.Sprintf(constants.KeyTripCandidates, tripID)

	members := make([]interface{}, len(agentIDs))
	for i, id := range agentIDs {
		members[i] = id
	}

	_, err := r.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save candidate pool: %w", err)
	}
	return nil
}

// GetCandidatePool returns the agents a trip was pushed to
func (r *LocationRepo) GetCandidatePool(ctx context.Context, tripID string) ([]string, error) {
	members, err := r.redisClient.Client.SMembers(ctx, fmt.Sprintf(constants.KeyTripCandidates, tripID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate pool: %w", err)
	}
	return members, nil
}

// DeleteCandidatePool drops a trip's candidate pool
func (r *LocationRepo) DeleteCandidatePool(ctx context.Context, tripID string) error {
	if err := r.redisClient.Client.Del(ctx, fmt.Sprintf(constants.KeyTripCandidates, tripID)).Err(); err != nil {
		return fmt.Errorf("failed to delete candidate pool: %w", err)
	}
	return nil
}
