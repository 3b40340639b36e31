package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/internal/utils"
	"github.com/piresc/kirimin/services/trips/kind"
)

// CreateTrip validates and prices a trip, persists it as open and pushes it
// to the nearest eligible agents.
func (uc *tripUC) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.CreateTripResponse, error) {
	if req.RequesterID == "" {
		return nil, apperror.Validation("requester is required")
	}
	tk, err := kind.For(req.Kind)
	if err != nil {
		return nil, err
	}
	if err := validatePoint("pickup", req.Pickup); err != nil {
		return nil, err
	}
	if err := validatePoint("drop", req.Drop); err != nil {
		return nil, err
	}
	if err := tk.Validate(req.TripPayload); err != nil {
		return nil, err
	}

	class, subclass := tk.Vehicle(req.TripPayload)
	distance := roundKm(utils.CalculateDistance(geoPoint(req.Pickup), geoPoint(req.Drop)))
	now := uc.clock.Now()

	trip := &models.Trip{
		ID:              uuid.New().String(),
		Kind:            tk.Name(),
		RequesterID:     req.RequesterID,
		Status:          models.TripStatusOpen,
		Pickup:          req.Pickup,
		Drop:            req.Drop,
		Payload:         req.TripPayload,
		VehicleClass:    class,
		VehicleSubclass: subclass,
		ServiceTag:      tk.DeriveServiceTag(req.TripPayload),
		DistanceKm:      distance,
		FareEstimate:    uc.fare(distance),
		Currency:        uc.cfg.Pricing.Currency,
		PickupGeohash:   utils.EncodeLocation(geoPoint(req.Pickup), utils.StoragePrecision),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	trip.RequesterStatus = trip.Status.RequesterStatus()

	err = nrpkg.WithSegment(ctx, "TripRepo.CreateTrip", func() error {
		return uc.tripRepo.CreateTrip(ctx, trip)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Trip created",
		logger.String("trip_id", trip.ID),
		logger.String("kind", string(trip.Kind)),
		logger.String("service_tag", string(trip.ServiceTag)),
		logger.Float64("distance_km", trip.DistanceKm),
		logger.Int64("fare", trip.FareEstimate))

	return &models.CreateTripResponse{
		Trip:           trip,
		CandidateCount: uc.pushTrip(ctx, trip),
	}, nil
}

// pushTrip offers a new trip to its candidates. Matching failures never fail
// the creation; the trip stays discoverable through the nearby query.
func (uc *tripUC) pushTrip(ctx context.Context, trip *models.Trip) int {
	candidates, err := uc.MatchAgents(ctx, trip)
	if err != nil {
		logger.WarnCtx(ctx, "Push matching failed",
			logger.String("trip_id", trip.ID),
			logger.Err(err))
		return 0
	}
	if len(candidates) == 0 {
		return 0
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Agent.ID)
	}
	if err := uc.locationRepo.SaveCandidatePool(ctx, trip.ID, ids, uc.poolTTL); err != nil {
		logger.WarnCtx(ctx, "Failed to save candidate pool",
			logger.String("trip_id", trip.ID),
			logger.Err(err))
	}

	for _, c := range candidates {
		offer := models.TripOfferEvent{Trip: trip, DistanceKm: c.DistanceKm}
		uc.notifyAgent(ctx, c.Agent.ID, constants.EventTripNew, offer)
	}
	return len(candidates)
}

// GetTrip returns a trip to its requester or its assigned agent
func (uc *tripUC) GetTrip(ctx context.Context, tripID, callerID string) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.RequesterID != callerID && !trip.IsAssignedTo(callerID) {
		return nil, apperror.Forbidden("trip is not visible to this user")
	}
	trip.RequesterStatus = trip.Status.RequesterStatus()
	return trip, nil
}

// fare is the static distance-based estimate in currency minor units
func (uc *tripUC) fare(distanceKm float64) int64 {
	return int64(math.Round(uc.cfg.Pricing.BaseFare + uc.cfg.Pricing.PerKmRate*distanceKm))
}

func validatePoint(name string, p models.Point) error {
	if !utils.ValidCoordinates(p.Latitude, p.Longitude) {
		return apperror.Validation("%s coordinates are invalid", name)
	}
	return nil
}

func geoPoint(p models.Point) utils.GeoPoint {
	return utils.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
