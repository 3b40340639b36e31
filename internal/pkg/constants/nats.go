package constants

// NATS Subjects
const (
	// SubjectFanoutPrefix namespaces real-time events relayed between instances
	SubjectFanoutPrefix = "fanout"
	SubjectFanoutAll    = "fanout.>"
	SubjectFanoutAgent  = "fanout.agent.%s" // Format: fanout.agent.{agent_id}
	SubjectFanoutTrip   = "fanout.trip.%s"  // Format: fanout.trip.{trip_id}
)

// NSQ Topics
const (
	TopicTripSettled = "trip.settled"
)
