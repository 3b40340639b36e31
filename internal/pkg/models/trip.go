package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TripKind discriminates the payload carried by a trip
type TripKind string

const (
	TripKindTransport TripKind = "transport"
	TripKindParcel    TripKind = "parcel"
	TripKindMove      TripKind = "move"
)

// TripStatus represents a trip lifecycle state
type TripStatus string

const (
	TripStatusCreated       TripStatus = "created"
	TripStatusOpen          TripStatus = "open"
	TripStatusAccepted      TripStatus = "accepted"
	TripStatusEnRoutePickup TripStatus = "en_route_pickup"
	TripStatusAtPickup      TripStatus = "at_pickup"
	TripStatusEnRouteDrop   TripStatus = "en_route_drop"
	TripStatusAtDestination TripStatus = "at_destination"
	TripStatusCompleted     TripStatus = "completed"
	TripStatusCancelled     TripStatus = "cancelled"
)

// NonTerminalStatuses lists every state a trip can be cancelled from
var NonTerminalStatuses = []TripStatus{
	TripStatusCreated,
	TripStatusOpen,
	TripStatusAccepted,
	TripStatusEnRoutePickup,
	TripStatusAtPickup,
	TripStatusEnRouteDrop,
	TripStatusAtDestination,
}

// IsTerminal reports whether no further transition is possible
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// RequesterStatus is the coarse status shown to the requester
func (s TripStatus) RequesterStatus() string {
	switch s {
	case TripStatusCreated, TripStatusOpen:
		return "searching"
	case TripStatusAccepted, TripStatusEnRoutePickup, TripStatusAtPickup:
		return "assigned"
	case TripStatusEnRouteDrop, TripStatusAtDestination:
		return "en route"
	case TripStatusCompleted:
		return "completed"
	case TripStatusCancelled:
		return "cancelled"
	default:
		return string(s)
	}
}

// VehicleClass is the coarse vehicle category an agent drives
type VehicleClass string

const (
	VehicleTwoWheeler  VehicleClass = "two-wheeler"
	VehicleFourWheeler VehicleClass = "four-wheeler"
	VehicleTruck       VehicleClass = "truck"
)

// ServiceTag is the capability label an agent must offer to be eligible for a trip
type ServiceTag string

const (
	ServiceBikeRide      ServiceTag = "bike_ride"
	ServiceCabBooking    ServiceTag = "cab_booking"
	ServiceLineHaul      ServiceTag = "line-haul"
	ServiceLocalParcel   ServiceTag = "local_parcel"
	ServiceIntraLine     ServiceTag = "intra-line"
	ServiceCrossRegion   ServiceTag = "cross-region"
	ServiceHouseholdMove ServiceTag = "household_move"
)

// Urgency is the delivery urgency of a parcel
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyExpress  Urgency = "express"
)

// Point is a trip endpoint
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// TransportPayload describes a point-to-point ride
type TransportPayload struct {
	VehicleClass    VehicleClass `json:"vehicle_class"`
	VehicleSubclass string       `json:"vehicle_subclass,omitempty"`
	Passengers      int          `json:"passengers,omitempty"`
}

// ParcelPayload describes a parcel delivery
type ParcelPayload struct {
	VehicleClass    VehicleClass `json:"vehicle_class"`
	VehicleSubclass string       `json:"vehicle_subclass,omitempty"`
	Urgency         Urgency      `json:"urgency"`
	Description     string       `json:"description"`
	WeightKg        float64      `json:"weight_kg,omitempty"`
	RecipientName   string       `json:"recipient_name,omitempty"`
	RecipientPhone  string       `json:"recipient_phone,omitempty"`
}

// MovePayload describes a household move
type MovePayload struct {
	VehicleClass VehicleClass   `json:"vehicle_class"`
	Items        map[string]int `json:"items"`
}

// TripPayload holds exactly one kind-specific payload
type TripPayload struct {
	Transport *TransportPayload `json:"transport,omitempty"`
	Parcel    *ParcelPayload    `json:"parcel,omitempty"`
	Move      *MovePayload      `json:"move,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (p TripPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *TripPayload) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = TripPayload{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported payload type %T", src)
	}
}

// OtpPhase names an OTP-gated stage of a trip
type OtpPhase string

const (
	OtpPhasePickup OtpPhase = "pickup"
	OtpPhaseDrop   OtpPhase = "drop"
)

// OtpRecord is the persisted state of one phase code. The plaintext is never stored.
type OtpRecord struct {
	Hash      string     `json:"-"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Attempts  int        `json:"attempts"`
	Verified  bool       `json:"verified"`
}

// Trip is a single requested movement of people or goods between two points
type Trip struct {
	ID              string       `json:"id"`
	Kind            TripKind     `json:"kind"`
	RequesterID     string       `json:"requester_id"`
	AgentID         *string      `json:"agent_id,omitempty"`
	Status          TripStatus   `json:"status"`
	RequesterStatus string       `json:"requester_status"`
	Pickup          Point        `json:"pickup"`
	Drop            Point        `json:"drop"`
	Payload         TripPayload  `json:"payload"`
	VehicleClass    VehicleClass `json:"vehicle_class"`
	VehicleSubclass string       `json:"vehicle_subclass,omitempty"`
	ServiceTag      ServiceTag   `json:"service_tag"`
	DistanceKm      float64      `json:"distance_km"`
	FareEstimate    int64        `json:"fare_estimate"`
	Currency        string       `json:"currency"`
	PickupGeohash   string       `json:"-"`
	SessionToken    string       `json:"-"`
	PickupOtp       OtpRecord    `json:"pickup_otp"`
	DropOtp         OtpRecord    `json:"drop_otp"`
	CancelReason    string       `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	AcceptedAt      *time.Time   `json:"accepted_at,omitempty"`
	StartedAt       *time.Time   `json:"started_at,omitempty"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	CancelledAt     *time.Time   `json:"cancelled_at,omitempty"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Otp returns the record for a phase
func (t *Trip) Otp(phase OtpPhase) OtpRecord {
	if phase == OtpPhaseDrop {
		return t.DropOtp
	}
	return t.PickupOtp
}

// IsAssignedTo reports whether agentID is the trip's assigned agent
func (t *Trip) IsAssignedTo(agentID string) bool {
	return t.AgentID != nil && *t.AgentID == agentID
}

// CreateTripRequest is the requester's trip submission
type CreateTripRequest struct {
	RequesterID string   `json:"-"`
	Kind        TripKind `json:"kind"`
	Pickup      Point    `json:"pickup"`
	Drop        Point    `json:"drop"`
	TripPayload
}

// CreateTripResponse is returned after a trip is persisted and pushed to candidates
type CreateTripResponse struct {
	Trip           *Trip `json:"trip"`
	CandidateCount int   `json:"candidate_count"`
}

// NearbyTripsQuery is an agent's pull-style discovery query
type NearbyTripsQuery struct {
	AgentID    string
	Location   Location
	RadiusKm   float64
	Capability ServiceTag
}

// NearbyTrip is an open trip with its distance to the query origin
type NearbyTrip struct {
	Trip       *Trip   `json:"trip"`
	DistanceKm float64 `json:"distance_km"`
}

// ClaimResult is returned only to the agent that won the claim
type ClaimResult struct {
	Trip         *Trip     `json:"trip"`
	PickupOtp    string    `json:"pickup_otp"`
	OtpExpiresAt time.Time `json:"otp_expires_at"`
}

// TransitionRequest carries an informational transition by the assigned agent
type TransitionRequest struct {
	TripID  string
	AgentID string
}

// VerifyOtpRequest carries a phase code entered by the assigned agent
type VerifyOtpRequest struct {
	TripID  string   `json:"-"`
	AgentID string   `json:"-"`
	Code    string   `json:"code"`
	Phase   OtpPhase `json:"phase"`
}

// VerifyOtpResult is the outcome of a successful verification
type VerifyOtpResult struct {
	Trip  *Trip       `json:"trip"`
	Stats *AgentStats `json:"stats,omitempty"`
}

// DestinationArrival carries the drop code issued when the agent reaches the drop point
type DestinationArrival struct {
	Trip         *Trip     `json:"trip"`
	DropOtp      string    `json:"drop_otp"`
	OtpExpiresAt time.Time `json:"otp_expires_at"`
}

// ResendOtpRequest asks for a fresh code for a phase
type ResendOtpRequest struct {
	TripID  string   `json:"-"`
	AgentID string   `json:"-"`
	Phase   OtpPhase `json:"phase"`
}

// OtpResponse carries a freshly issued plaintext code
type OtpResponse struct {
	TripID    string    `json:"trip_id"`
	Phase     OtpPhase  `json:"phase"`
	Otp       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CancelTripRequest cancels a trip
type CancelTripRequest struct {
	TripID  string `json:"-"`
	ActorID string `json:"-"`
	Reason  string `json:"reason"`
}
