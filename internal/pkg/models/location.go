package models

import "time"

// Location is a reported position
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// NearbyAgent is a GeoIndex hit
type NearbyAgent struct {
	AgentID    string
	Location   Location
	DistanceKm float64
}

// LocationUpdate is an agent heartbeat
type LocationUpdate struct {
	AgentID   string  `json:"-"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
