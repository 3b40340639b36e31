package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	pkgws "github.com/piresc/kirimin/internal/pkg/websocket"
	"github.com/piresc/kirimin/internal/utils"
	"github.com/piresc/kirimin/services/trips"
)

// TripsSocket serves the real-time channel for agents and requesters
type TripsSocket struct {
	tripUC  trips.TripUC
	manager *pkgws.Manager
}

// NewTripsSocket creates a new socket handler
func NewTripsSocket(tripUC trips.TripUC, manager *pkgws.Manager) *TripsSocket {
	return &TripsSocket{
		tripUC:  tripUC,
		manager: manager,
	}
}

// HandleWebSocket authenticates and upgrades a connection
func (s *TripsSocket) HandleWebSocket(c echo.Context) error {
	return s.manager.HandleConnection(c, s.handleClient)
}

func (s *TripsSocket) handleClient(client *pkgws.Client) error {
	if err := utils.CallerID(client.UserID); err != nil {
		return s.sendError(client, err)
	}

	if client.Role == constants.RoleAgent {
		room := pkgws.AgentRoom(client.UserID)
		s.manager.Join(room, client)
		s.setPresence(client.UserID, true)
		defer func() {
			// another open socket keeps the agent online
			if s.manager.Leave(room, client) == 0 {
				s.setPresence(client.UserID, false)
			}
		}()
	}

	logger.Info("WebSocket client connected",
		logger.String("user_id", client.UserID),
		logger.String("role", client.Role))

	for {
		msg, err := client.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket closed unexpectedly",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return nil
		}

		if err := s.handleMessage(context.Background(), client, msg); err != nil {
			logger.Warn("Error handling WebSocket message",
				logger.String("user_id", client.UserID),
				logger.Err(err))
		}
	}
}

func (s *TripsSocket) setPresence(agentID string, online bool) {
	if err := s.tripUC.SetAgentPresence(context.Background(), agentID, online); err != nil {
		logger.Warn("Failed to update agent presence",
			logger.String("agent_id", agentID),
			logger.Bool("online", online),
			logger.Err(err))
	}
}

func (s *TripsSocket) handleMessage(ctx context.Context, client *pkgws.Client, msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return s.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventUpdateLocation:
		return s.agentOnly(client, func() error { return s.handleUpdateLocation(ctx, client, wsMsg.Data) })
	case constants.EventTripAccepted:
		return s.agentOnly(client, func() error { return s.handleTripAccepted(ctx, client, wsMsg.Data) })
	case constants.EventTripFinished:
		return s.agentOnly(client, func() error { return s.handleTripFinished(ctx, client, wsMsg.Data) })
	case constants.EventSubscribeTrip:
		return s.handleSubscribeTrip(ctx, client, wsMsg.Data)
	default:
		return s.manager.SendErrorMessage(client, constants.ErrorUnknownEvent, "Unknown event type")
	}
}

func (s *TripsSocket) agentOnly(client *pkgws.Client, fn func() error) error {
	if client.Role != constants.RoleAgent {
		return s.manager.SendErrorMessage(client, constants.ErrorUnauthorized, "Only agents can send this event")
	}
	return fn()
}

func (s *TripsSocket) handleUpdateLocation(ctx context.Context, client *pkgws.Client, data json.RawMessage) error {
	var update models.LocationUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return s.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid location format")
	}
	update.AgentID = client.UserID

	if err := s.tripUC.UpdateAgentLocation(ctx, update); err != nil {
		return s.sendError(client, err)
	}
	return client.Send(constants.EventLocationAck, models.LocationAck{Success: true})
}

func (s *TripsSocket) handleTripAccepted(ctx context.Context, client *pkgws.Client, data json.RawMessage) error {
	ref, err := s.tripRef(client, data)
	if err != nil || ref == nil {
		return err
	}

	result, err := s.tripUC.ClaimTrip(ctx, ref.TripID, client.UserID)
	if err != nil {
		return s.sendError(client, err)
	}
	s.manager.Join(pkgws.TripRoom(ref.TripID), client)
	return client.Send(constants.EventTripAccepted, result)
}

// handleTripFinished answers with fresh stats once the agent's own trip has completed
func (s *TripsSocket) handleTripFinished(ctx context.Context, client *pkgws.Client, data json.RawMessage) error {
	ref, err := s.tripRef(client, data)
	if err != nil || ref == nil {
		return err
	}

	trip, err := s.tripUC.GetTrip(ctx, ref.TripID, client.UserID)
	if err != nil {
		return s.sendError(client, err)
	}
	if !trip.IsAssignedTo(client.UserID) {
		return s.sendError(client, apperror.Forbidden("trip is not assigned to this agent"))
	}
	if trip.Status != models.TripStatusCompleted {
		return s.sendError(client, apperror.Validation("trip %s is %s, not completed", trip.ID, trip.Status))
	}

	stats, err := s.tripUC.GetAgentStats(ctx, client.UserID)
	if err != nil {
		return s.sendError(client, err)
	}
	return client.Send(constants.EventStatsUpdated, stats)
}

func (s *TripsSocket) handleSubscribeTrip(ctx context.Context, client *pkgws.Client, data json.RawMessage) error {
	ref, err := s.tripRef(client, data)
	if err != nil || ref == nil {
		return err
	}

	trip, err := s.tripUC.GetTrip(ctx, ref.TripID, client.UserID)
	if err != nil {
		return s.sendError(client, err)
	}
	s.manager.Join(pkgws.TripRoom(trip.ID), client)
	return client.Send(constants.EventTripStatus, models.TripStatusEvent{
		TripID:          trip.ID,
		Status:          trip.Status,
		RequesterStatus: trip.RequesterStatus,
	})
}

// tripRef decodes a {tripId} payload; a nil ref means the client was already told why
func (s *TripsSocket) tripRef(client *pkgws.Client, data json.RawMessage) (*models.TripRef, error) {
	var ref models.TripRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.TripID == "" {
		return nil, s.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "tripId is required")
	}
	if err := utils.ResourceID("trip", ref.TripID); err != nil {
		return nil, s.sendError(client, err)
	}
	return &ref, nil
}

// sendError maps the taxonomy onto socket error codes and severities
func (s *TripsSocket) sendError(client *pkgws.Client, err error) error {
	switch {
	case errors.Is(err, apperror.ErrForbidden):
		return s.manager.SendCategorizedError(client, err, constants.ErrorUnauthorized, constants.ErrorSeveritySecurity)
	case isAppError(err):
		return s.manager.SendCategorizedError(client, err, constants.ErrorValidationFailed, constants.ErrorSeverityClient)
	default:
		return s.manager.SendCategorizedError(client, err, constants.ErrorInternalError, constants.ErrorSeverityServer)
	}
}

func isAppError(err error) bool {
	_, ok := apperror.As(err)
	return ok
}
