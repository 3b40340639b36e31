package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/middleware"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/internal/utils"
	"github.com/piresc/kirimin/services/trips"
)

// TripsHandler handles HTTP requests for trip operations
type TripsHandler struct {
	tripUC trips.TripUC
}

// NewTripsHandler creates a new trip HTTP handler
func NewTripsHandler(tripUC trips.TripUC) *TripsHandler {
	return &TripsHandler{
		tripUC: tripUC,
	}
}

// fail notices err on the transaction and renders it through the error taxonomy
func fail(c echo.Context, op string, err error) error {
	nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
	logger.WarnCtx(c.Request().Context(), op+" failed",
		logger.String("path", c.Path()),
		logger.String("user_id", middleware.UserID(c)),
		logger.Err(err))
	return utils.AppErrorResponse(c, err)
}

// caller returns the authenticated identity once it parses as an id
func caller(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	return id, utils.CallerID(id)
}

// tripAndCaller reads the path trip id and the caller's identity
func tripAndCaller(c echo.Context) (string, string, error) {
	callerID, err := caller(c)
	if err != nil {
		return "", "", err
	}
	tripID := c.Param("tripID")
	if err := utils.ResourceID("trip", tripID); err != nil {
		return "", "", err
	}
	return tripID, callerID, nil
}

// CreateTrip handles a requester's new trip
func (h *TripsHandler) CreateTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.CreateTrip")

	var req models.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	requesterID, err := caller(c)
	if err != nil {
		return fail(c, "Create trip", err)
	}
	req.RequesterID = requesterID

	resp, err := h.tripUC.CreateTrip(c.Request().Context(), req)
	if err != nil {
		return fail(c, "Create trip", err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Trip created successfully", resp)
}

// GetTrip returns a trip to its requester or assigned agent
func (h *TripsHandler) GetTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.GetTrip")

	tripID, callerID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Get trip", err)
	}

	trip, err := h.tripUC.GetTrip(c.Request().Context(), tripID, callerID)
	if err != nil {
		return fail(c, "Get trip", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", trip)
}

// FindNearbyTrips handles an agent's pull-style discovery query
func (h *TripsHandler) FindNearbyTrips(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.FindNearbyTrips")

	agentID, err := caller(c)
	if err != nil {
		return fail(c, "Find nearby trips", err)
	}

	var lat, lng, radius float64
	var capability string
	err = echo.QueryParamsBinder(c).
		MustFloat64("lat", &lat).
		MustFloat64("lng", &lng).
		Float64("radiusKm", &radius).
		String("capability", &capability).
		BindError()
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid query: "+err.Error())
	}

	result, err := h.tripUC.FindNearbyTrips(c.Request().Context(), models.NearbyTripsQuery{
		AgentID:    agentID,
		Location:   models.Location{Latitude: lat, Longitude: lng},
		RadiusKm:   radius,
		Capability: models.ServiceTag(capability),
	})
	if err != nil {
		return fail(c, "Find nearby trips", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Nearby trips retrieved successfully", result)
}

// AcceptTrip handles an agent's claim on an open trip
func (h *TripsHandler) AcceptTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.AcceptTrip")

	tripID, agentID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Accept trip", err)
	}

	result, err := h.tripUC.ClaimTrip(c.Request().Context(), tripID, agentID)
	if err != nil {
		return fail(c, "Accept trip", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip accepted successfully", result)
}

// Depart handles the agent leaving for the pickup point
func (h *TripsHandler) Depart(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.Depart")
	return h.transition(c, "Depart", h.tripUC.Depart)
}

// ReachedPickup handles the agent's arrival at the pickup point
func (h *TripsHandler) ReachedPickup(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.ReachedPickup")
	return h.transition(c, "Reached pickup", h.tripUC.ReachPickup)
}

// ReachedDestination handles the agent's arrival at the drop point and
// returns the drop code for the requester
func (h *TripsHandler) ReachedDestination(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.ReachedDestination")

	tripID, agentID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Reached destination", err)
	}

	arrival, err := h.tripUC.ReachDestination(c.Request().Context(), models.TransitionRequest{
		TripID:  tripID,
		AgentID: agentID,
	})
	if err != nil {
		return fail(c, "Reached destination", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip status updated", arrival)
}

type transitionFunc func(ctx context.Context, req models.TransitionRequest) (*models.Trip, error)

func (h *TripsHandler) transition(c echo.Context, op string, fn transitionFunc) error {
	tripID, agentID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, op, err)
	}

	trip, err := fn(c.Request().Context(), models.TransitionRequest{
		TripID:  tripID,
		AgentID: agentID,
	})
	if err != nil {
		return fail(c, op, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip status updated", trip)
}

// VerifyOtp handles a phase code entered by the agent
func (h *TripsHandler) VerifyOtp(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.VerifyOtp")

	var req models.VerifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	tripID, callerID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Verify OTP", err)
	}
	req.TripID = tripID
	req.AgentID = callerID

	result, err := h.tripUC.VerifyOtp(c.Request().Context(), req)
	if err != nil {
		return fail(c, "Verify OTP", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP verified successfully", result)
}

// ResendOtp issues a fresh code for a phase
func (h *TripsHandler) ResendOtp(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.ResendOtp")

	var req models.ResendOtpRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	tripID, callerID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Resend OTP", err)
	}
	req.TripID = tripID
	req.AgentID = callerID

	result, err := h.tripUC.ResendOtp(c.Request().Context(), req)
	if err != nil {
		return fail(c, "Resend OTP", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP resent successfully", result)
}

// CancelTrip handles cancellation by the requester or the assigned agent
func (h *TripsHandler) CancelTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trips.CancelTrip")

	var req models.CancelTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	tripID, callerID, err := tripAndCaller(c)
	if err != nil {
		return fail(c, "Cancel trip", err)
	}
	req.TripID = tripID
	req.ActorID = callerID

	trip, err := h.tripUC.CancelTrip(c.Request().Context(), req)
	if err != nil {
		return fail(c, "Cancel trip", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip cancelled successfully", trip)
}
