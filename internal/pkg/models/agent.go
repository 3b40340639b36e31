package models

import "time"

// Agent is a mobile worker fulfilling trips
type Agent struct {
	ID              string       `json:"id"`
	Phone           string       `json:"phone"`
	VehicleClass    VehicleClass `json:"vehicle_class"`
	VehicleSubclass string       `json:"vehicle_subclass,omitempty"`
	Services        []ServiceTag `json:"services"`
	Online          bool         `json:"online"`
	Approved        bool         `json:"approved"`
	LastLocation    *Location    `json:"last_location,omitempty"`
	Rating          float64      `json:"rating"`
	TodayTrips      int          `json:"today_trips"`
	TodayEarnings   int64        `json:"today_earnings"`
	ActiveTrips     int          `json:"active_trips"`
	LifetimeTrips   int          `json:"lifetime_trips"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// HasService reports whether the agent offers the given tag
func (a *Agent) HasService(tag ServiceTag) bool {
	for _, s := range a.Services {
		if s == tag {
			return true
		}
	}
	return false
}

// Stats projects the agent's running counters
func (a *Agent) Stats() *AgentStats {
	return &AgentStats{
		AgentID:       a.ID,
		TodayTrips:    a.TodayTrips,
		TodayEarnings: a.TodayEarnings,
		ActiveTrips:   a.ActiveTrips,
		LifetimeTrips: a.LifetimeTrips,
		Rating:        a.Rating,
	}
}

// AgentStats holds an agent's running counters
type AgentStats struct {
	AgentID       string  `json:"agentId" db:"id"`
	TodayTrips    int     `json:"todayTrips" db:"today_trips"`
	TodayEarnings int64   `json:"todayEarnings" db:"today_earnings"`
	ActiveTrips   int     `json:"activeTrips" db:"active_trips"`
	LifetimeTrips int     `json:"lifetimeTrips" db:"lifetime_trips"`
	Rating        float64 `json:"rating" db:"rating"`
}

// UpsertAgentRequest is the internal agent registration payload
type UpsertAgentRequest struct {
	ID              string       `json:"-"`
	Phone           string       `json:"phone"`
	VehicleClass    VehicleClass `json:"vehicle_class"`
	VehicleSubclass string       `json:"vehicle_subclass"`
	Services        []ServiceTag `json:"services"`
	Approved        bool         `json:"approved"`
	Rating          float64      `json:"rating"`
}

// AgentCandidate is an eligible agent ranked for push matching
type AgentCandidate struct {
	Agent      *Agent  `json:"agent"`
	DistanceKm float64 `json:"distance_km"`
}
