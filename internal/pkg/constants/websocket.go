package constants

// WebSocket rooms
const (
	RoomAgent = "agent:%s" // Format: agent:{agent_id}
	RoomTrip  = "trip:%s"  // Format: trip:{trip_id}
)

// WebSocket event types
const (
	// Common events
	EventError = "error"

	// Server to client
	EventTripNew       = "trip:new"
	EventTripAssigned  = "trip:assigned"
	EventTripStatus    = "trip:status"
	EventTripCancelled = "trip:cancelled"
	EventTripCompleted = "trip:completed"
	EventStatsUpdated  = "stats:updated"
	EventLocationAck   = "locationUpdated"

	// Client to server
	EventUpdateLocation = "updateLocation"
	EventTripAccepted   = "tripAccepted"
	EventTripFinished   = "tripCompleted"
	EventSubscribeTrip  = "subscribeTrip"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorUnknownEvent     = "unknown_event"
)

// ErrorSeverity controls how much detail a client sees for a failed event
type ErrorSeverity int

const (
	ErrorSeverityClient ErrorSeverity = iota
	ErrorSeverityServer
	ErrorSeveritySecurity
)

// User roles carried in JWT claims
const (
	RoleAgent     = "agent"
	RoleRequester = "requester"
)
