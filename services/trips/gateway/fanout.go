package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/pkg/websocket"
)

// NotifyAgent publishes event to the agent's room on every instance
func (g *TripGW) NotifyAgent(ctx context.Context, agentID, event string, data interface{}) error {
	return g.fanout(fmt.Sprintf(constants.SubjectFanoutAgent, agentID), websocket.AgentRoom(agentID), event, data)
}

// NotifyTrip publishes event to the trip's room on every instance
func (g *TripGW) NotifyTrip(ctx context.Context, tripID, event string, data interface{}) error {
	return g.fanout(fmt.Sprintf(constants.SubjectFanoutTrip, tripID), websocket.TripRoom(tripID), event, data)
}

func (g *TripGW) fanout(subject, room, event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	envelope, err := json.Marshal(models.FanoutEnvelope{Room: room, Event: event, Data: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal fan-out envelope: %w", err)
	}
	return g.publisher.Publish(subject, envelope)
}
