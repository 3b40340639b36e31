package constants

// Redis key formats
const (
	// GeoIndex
	KeyAgentGeo       = "agents:geo"         // GeoHash set of all agent locations
	KeyAgentLocation  = "agent:location:%s"  // Format: agent:location:{agent_id}
	KeyTripCandidates = "trip:candidates:%s" // Format: trip:candidates:{trip_id}

	// Rate Limiting
	KeyRateLimit = "rate:%s:%s:%s" // Format: rate:{scope}:{route}:{identifier}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
)
