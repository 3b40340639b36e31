package usecase

import (
	"errors"
	"time"

	"github.com/piresc/kirimin/internal/pkg/clock"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/pkg/otp"
	"github.com/piresc/kirimin/services/trips"
)

const (
	defaultSearchRadiusKm = 10.0
	maxSearchRadiusKm     = 50.0
	defaultMaxCandidates  = 20
	defaultAgentShare     = 0.70
	defaultHeartbeatTTL   = 2 * time.Minute
	defaultPoolTTL        = 15 * time.Minute

	// conditional updates are retried when a concurrent request moved the trip
	maxCASRetries = 3
)

// tripUC implements trips.TripUC
type tripUC struct {
	cfg          *models.Config
	tripRepo     trips.TripRepo
	agentRepo    trips.AgentRepo
	locationRepo trips.LocationRepo
	tripGW       trips.TripGW
	otp          *otp.Service
	clock        clock.Clock

	radiusKm      float64
	maxCandidates int
	agentShare    float64
	heartbeatTTL  time.Duration
	poolTTL       time.Duration
}

// NewTripUC creates the trip matching and lifecycle usecase
func NewTripUC(
	cfg *models.Config,
	tripRepo trips.TripRepo,
	agentRepo trips.AgentRepo,
	locationRepo trips.LocationRepo,
	tripGW trips.TripGW,
	otpService *otp.Service,
	clk clock.Clock,
) (trips.TripUC, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if tripRepo == nil || agentRepo == nil || locationRepo == nil {
		return nil, errors.New("repositories are required")
	}
	if tripGW == nil {
		return nil, errors.New("trip gateway is required")
	}
	if otpService == nil {
		otpService = otp.NewService(cfg.OTP)
	}
	if clk == nil {
		clk = clock.Real()
	}

	uc := &tripUC{
		cfg:           cfg,
		tripRepo:      tripRepo,
		agentRepo:     agentRepo,
		locationRepo:  locationRepo,
		tripGW:        tripGW,
		otp:           otpService,
		clock:         clk,
		radiusKm:      cfg.Match.SearchRadiusKm,
		maxCandidates: cfg.Match.MaxCandidates,
		agentShare:    cfg.Earnings.AgentShare,
		heartbeatTTL:  time.Duration(cfg.Match.HeartbeatTTLSeconds) * time.Second,
		poolTTL:       time.Duration(cfg.Match.CandidatePoolTTLSeconds) * time.Second,
	}
	if uc.radiusKm <= 0 {
		uc.radiusKm = defaultSearchRadiusKm
	}
	if uc.maxCandidates <= 0 {
		uc.maxCandidates = defaultMaxCandidates
	}
	if uc.agentShare <= 0 || uc.agentShare > 1 {
		uc.agentShare = defaultAgentShare
	}
	if uc.heartbeatTTL <= 0 {
		uc.heartbeatTTL = defaultHeartbeatTTL
	}
	if uc.poolTTL <= 0 {
		uc.poolTTL = defaultPoolTTL
	}
	return uc, nil
}
