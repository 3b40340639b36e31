package models

import "time"

// OtpIssue is a freshly generated code. Code is plaintext and must only be
// returned to the caller once; Hash is what gets persisted.
type OtpIssue struct {
	Phase     OtpPhase
	Code      string
	Hash      string
	ExpiresAt time.Time
}

// OtpAttempt is a compare-and-swap update recording one verification attempt.
// The update applies only while the trip is still in FromStatus with
// ExpectedAttempts recorded for the phase.
type OtpAttempt struct {
	TripID           string
	Phase            OtpPhase
	FromStatus       TripStatus
	ExpectedAttempts int
	Verified         bool
	ToStatus         TripStatus
	At               time.Time
	Settlement       *LedgerEntry
}

// GateArrival moves an assigned trip into a code-gated state and stores the
// code that opens the gate, provided the trip is still in FromStatus.
type GateArrival struct {
	TripID     string
	AgentID    string
	FromStatus TripStatus
	ToStatus   TripStatus
	Otp        OtpIssue
	At         time.Time
}

// TripClaim is the conditional update binding an agent to an open trip
type TripClaim struct {
	TripID       string
	AgentID      string
	SessionToken string
	At           time.Time
	PickupOtp    OtpIssue
}
