package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/kirimin/internal/pkg/clock"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/pkg/otp"
	"github.com/piresc/kirimin/services/trips"
	"github.com/piresc/kirimin/services/trips/mocks"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testDeps struct {
	tripRepo     *mocks.MockTripRepo
	agentRepo    *mocks.MockAgentRepo
	locationRepo *mocks.MockLocationRepo
	gw           *mocks.MockTripGW
	clock        *clock.Fake
	otp          *otp.Service
	uc           trips.TripUC
}

func testConfig() *models.Config {
	return &models.Config{
		Pricing: models.PricingConfig{Currency: "INR", BaseFare: 3000, PerKmRate: 1200},
		Match: models.MatchConfig{
			SearchRadiusKm:          10,
			MaxCandidates:           20,
			HeartbeatTTLSeconds:     120,
			CandidatePoolTTLSeconds: 900,
		},
		OTP:      models.OTPConfig{Length: 6, TTLMinutes: 10, MaxAttempts: 5, HashCost: bcrypt.MinCost},
		Earnings: models.EarningsConfig{AgentShare: 0.70},
	}
}

// sequentialCodes hands out codes in order, repeating the last one
func sequentialCodes(codes ...string) otp.CodeSource {
	var mu sync.Mutex
	i := 0
	return func(int) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c, nil
	}
}

func newTestDeps(t *testing.T, cfg *models.Config, codes ...string) *testDeps {
	ctrl := gomock.NewController(t)
	if len(codes) == 0 {
		codes = []string{"123456"}
	}

	d := &testDeps{
		tripRepo:     mocks.NewMockTripRepo(ctrl),
		agentRepo:    mocks.NewMockAgentRepo(ctrl),
		locationRepo: mocks.NewMockLocationRepo(ctrl),
		gw:           mocks.NewMockTripGW(ctrl),
		clock:        clock.NewFake(testStart),
	}
	d.otp = otp.NewService(cfg.OTP, otp.WithClock(d.clock), otp.WithCodeSource(sequentialCodes(codes...)))

	uc, err := NewTripUC(cfg, d.tripRepo, d.agentRepo, d.locationRepo, d.gw, d.otp, d.clock)
	require.NoError(t, err)
	d.uc = uc
	return d
}

// quietGateway accepts any notification
func (d *testDeps) quietGateway() {
	d.gw.EXPECT().NotifyAgent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.gw.EXPECT().NotifyTrip(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func strPtr(s string) *string {
	return &s
}

func testAgent(id string, class models.VehicleClass, services ...models.ServiceTag) *models.Agent {
	return &models.Agent{
		ID:            id,
		Phone:         "919800000001",
		VehicleClass:  class,
		Services:      services,
		Online:        true,
		Approved:      true,
		Rating:        4.5,
		LifetimeTrips: 20,
	}
}

func transportTrip(id string, status models.TripStatus, pickup models.Point) *models.Trip {
	return &models.Trip{
		ID:           id,
		Kind:         models.TripKindTransport,
		RequesterID:  "req-1",
		Status:       status,
		Pickup:       pickup,
		Drop:         models.Point{Latitude: 19.10, Longitude: 72.90, Address: "Bandra"},
		Payload:      models.TripPayload{Transport: &models.TransportPayload{VehicleClass: models.VehicleTwoWheeler}},
		VehicleClass: models.VehicleTwoWheeler,
		ServiceTag:   models.ServiceBikeRide,
		FareEstimate: 1000,
		Currency:     "INR",
		CreatedAt:    testStart,
		UpdatedAt:    testStart,
	}
}

// tripStore is an in-memory stand-in for the conditional updates of TripRepo,
// wired into the mock with DoAndReturn.
type tripStore struct {
	mu   sync.Mutex
	trip models.Trip
}

func newTripStore(trip *models.Trip) *tripStore {
	return &tripStore{trip: *trip}
}

func (s *tripStore) get() *models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.trip
	return &cp
}

func (s *tripStore) record(phase models.OtpPhase) *models.OtpRecord {
	if phase == models.OtpPhaseDrop {
		return &s.trip.DropOtp
	}
	return &s.trip.PickupOtp
}

func (s *tripStore) applyOtpAttempt(attempt models.OtpAttempt) (bool, *models.AgentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(attempt.Phase)
	if s.trip.Status != attempt.FromStatus || rec.Attempts != attempt.ExpectedAttempts || rec.Verified {
		return false, nil, nil
	}
	rec.Attempts++
	if attempt.Verified {
		rec.Verified = true
		s.trip.Status = attempt.ToStatus
	}
	return true, nil, nil
}

func (s *tripStore) arrive(arrival models.GateArrival) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip.Status != arrival.FromStatus || !s.trip.IsAssignedTo(arrival.AgentID) {
		return false
	}
	s.trip.Status = arrival.ToStatus
	expires := arrival.Otp.ExpiresAt
	*s.record(arrival.Otp.Phase) = models.OtpRecord{Hash: arrival.Otp.Hash, ExpiresAt: &expires}
	return true
}

func (s *tripStore) reissue(status models.TripStatus, issue models.OtpIssue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip.Status != status {
		return false
	}
	expires := issue.ExpiresAt
	*s.record(issue.Phase) = models.OtpRecord{Hash: issue.Hash, ExpiresAt: &expires}
	return true
}

// wire routes the store-backed TripRepo calls to s
func (s *tripStore) wire(repo *mocks.MockTripRepo) {
	repo.EXPECT().GetTrip(gomock.Any(), s.trip.ID).
		DoAndReturn(func(_ context.Context, _ string) (*models.Trip, error) {
			return s.get(), nil
		}).AnyTimes()
	repo.EXPECT().ApplyOtpAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt models.OtpAttempt) (bool, *models.AgentStats, error) {
			return s.applyOtpAttempt(attempt)
		}).AnyTimes()
	repo.EXPECT().ArriveAtGate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arrival models.GateArrival) (bool, error) {
			return s.arrive(arrival), nil
		}).AnyTimes()
	repo.EXPECT().ReissueOtp(gomock.Any(), s.trip.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, status models.TripStatus, issue models.OtpIssue) (bool, error) {
			return s.reissue(status, issue), nil
		}).AnyTimes()
}
