package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/internal/utils"
)

// GetMyStats returns the calling agent's running counters
func (h *TripsHandler) GetMyStats(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Agents.GetMyStats")

	agentID, err := caller(c)
	if err != nil {
		return fail(c, "Get agent stats", err)
	}

	stats, err := h.tripUC.GetAgentStats(c.Request().Context(), agentID)
	if err != nil {
		return fail(c, "Get agent stats", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// UpdateMyLocation records the calling agent's position
func (h *TripsHandler) UpdateMyLocation(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Agents.UpdateMyLocation")

	var update models.LocationUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	agentID, err := caller(c)
	if err != nil {
		return fail(c, "Update agent location", err)
	}
	update.AgentID = agentID

	if err := h.tripUC.UpdateAgentLocation(c.Request().Context(), update); err != nil {
		return fail(c, "Update agent location", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", models.LocationAck{Success: true})
}

// UpsertAgent registers or updates an agent; internal callers only
func (h *TripsHandler) UpsertAgent(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Internal.UpsertAgent")

	var req models.UpsertAgentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	req.ID = c.Param("agentID")
	if err := utils.ResourceID("agent", req.ID); err != nil {
		return fail(c, "Upsert agent", err)
	}

	agent, err := h.tripUC.UpsertAgent(c.Request().Context(), req)
	if err != nil {
		return fail(c, "Upsert agent", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Agent saved successfully", agent)
}

// SettleTrip retries settlement of a completed trip; internal callers only
func (h *TripsHandler) SettleTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Internal.SettleTrip")

	tripID := c.Param("tripID")
	if err := utils.ResourceID("trip", tripID); err != nil {
		return fail(c, "Settle trip", err)
	}

	stats, err := h.tripUC.SettleTrip(c.Request().Context(), tripID)
	if err != nil {
		return fail(c, "Settle trip", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip settled successfully", stats)
}
