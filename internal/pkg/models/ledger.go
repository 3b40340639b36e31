package models

import "time"

// LedgerEntry is the immutable settlement record of a completed trip
type LedgerEntry struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	AgentID   string    `json:"agent_id"`
	Kind      TripKind  `json:"kind"`
	Pickup    Point     `json:"pickup"`
	Drop      Point     `json:"drop"`
	Fare      int64     `json:"fare"`
	TakeHome  int64     `json:"take_home"`
	Currency  string    `json:"currency"`
	SettledAt time.Time `json:"settled_at"`
}
