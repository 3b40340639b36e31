package models

import "encoding/json"

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FanoutEnvelope is a real-time event routed between instances
type FanoutEnvelope struct {
	Room  string          `json:"room"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// TripRef identifies a trip in client events
type TripRef struct {
	TripID string `json:"tripId"`
}

// LocationAck answers an updateLocation event
type LocationAck struct {
	Success bool `json:"success"`
}

// TripStatusEvent announces an informational transition
type TripStatusEvent struct {
	TripID          string     `json:"tripId"`
	Status          TripStatus `json:"status"`
	RequesterStatus string     `json:"requesterStatus"`
}

// TripCancelledEvent announces a trip is no longer open or was cancelled
type TripCancelledEvent struct {
	TripID string `json:"tripId"`
	Reason string `json:"reason"`
}

// TripOfferEvent pushes an open trip to a matched agent
type TripOfferEvent struct {
	Trip       *Trip   `json:"trip"`
	DistanceKm float64 `json:"distanceKm"`
}

// TripAssignedEvent tells the trip room which agent won the claim
type TripAssignedEvent struct {
	TripID          string     `json:"tripId"`
	AgentID         string     `json:"agentId"`
	Status          TripStatus `json:"status"`
	RequesterStatus string     `json:"requesterStatus"`
}

// TripCompletedEvent announces a settled trip
type TripCompletedEvent struct {
	TripID   string `json:"tripId"`
	Fare     int64  `json:"fare"`
	TakeHome int64  `json:"takeHome,omitempty"`
	Currency string `json:"currency"`
}
