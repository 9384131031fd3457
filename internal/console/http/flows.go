package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// FlowsHandler handles flow session lifecycle and navigation endpoints.
type FlowsHandler struct {
	FlowService *service.FlowService
}

// HandleCreate handles POST /v1/flows
//
//	@Summary		Open a registration flow
//	@Description	Validates a Configure-step submission against the device type's rules and opens a new flow session at step 0.
//	@Tags			Flows
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateFlowRequest	true	"Configure submission"
//	@Success		201		{object}	FlowResponse		"New flow session"
//	@Failure		400		{object}	ErrorResponse		"Validation failed or unknown device/flow type"
//	@Failure		500		{object}	ErrorResponse		"Internal server error"
//	@Router			/v1/flows [post].
func (h *FlowsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req CreateFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	flow, err := h.FlowService.CreateFlow(ctx, service.CreateFlowParams{
		FlowType:      domain.FlowType(req.FlowType),
		DeviceType:    domain.DeviceType(req.DeviceType),
		EnvironmentID: req.EnvironmentID,
		Username:      req.Username,
		UserToken:     req.UserToken,
		PolicyID:      req.PolicyID,
		Fields:        req.Fields,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("flow created", "flow_id", flow.ID, "device_type", req.DeviceType, "flow_type", req.FlowType)
	httpx.WriteJSON(w, http.StatusCreated, flowResponse(flow))
}

// HandleGet handles GET /v1/flows/{id}
//
//	@Summary		Get a flow session
//	@Description	Returns the full flow state including wizard step metadata.
//	@Tags			Flows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Flow ID"
//	@Success		200	{object}	FlowResponse	"Flow session"
//	@Failure		404	{object}	ErrorResponse	"Flow not found"
//	@Router			/v1/flows/{id} [get].
func (h *FlowsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flow, err := h.FlowService.GetFlow(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}

// HandleDelete handles DELETE /v1/flows/{id}
//
//	@Summary		Delete a flow session
//	@Tags			Flows
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Flow ID"
//	@Success		204	"Flow deleted"
//	@Failure		500	{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/flows/{id} [delete].
func (h *FlowsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.FlowService.DeleteFlow(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleNext handles POST /v1/flows/{id}/next
//
//	@Summary		Advance a flow one step
//	@Description	Moves the flow forward after the current step's entry guard passes. The step index is clamped at the terminal step.
//	@Tags			Flows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Flow ID"
//	@Success		200	{object}	FlowResponse	"Updated flow"
//	@Failure		404	{object}	ErrorResponse	"Flow not found"
//	@Failure		409	{object}	ErrorResponse	"Step preconditions not met"
//	@Router			/v1/flows/{id}/next [post].
func (h *FlowsHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	flow, err := h.FlowService.Next(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}

// HandlePrevious handles POST /v1/flows/{id}/previous
//
//	@Summary		Step a flow back
//	@Tags			Flows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Flow ID"
//	@Success		200	{object}	FlowResponse	"Updated flow"
//	@Failure		404	{object}	ErrorResponse	"Flow not found"
//	@Router			/v1/flows/{id}/previous [post].
func (h *FlowsHandler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	flow, err := h.FlowService.Previous(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}

// HandleGoToStep handles POST /v1/flows/{id}/steps/{n}
//
//	@Summary		Jump a flow to a step
//	@Tags			Flows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Flow ID"
//	@Param			n	path		int				true	"Step index (0-6)"
//	@Success		200	{object}	FlowResponse	"Updated flow"
//	@Failure		400	{object}	ErrorResponse	"Step index out of range"
//	@Failure		404	{object}	ErrorResponse	"Flow not found"
//	@Router			/v1/flows/{id}/steps/{n} [post].
func (h *FlowsHandler) HandleGoToStep(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Step index must be an integer")
		return
	}

	flow, err := h.FlowService.GoToStep(r.Context(), r.PathValue("id"), domain.Step(n))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}

// HandleComplete handles POST /v1/flows/{id}/complete
//
//	@Summary		Mark the current step complete
//	@Description	Records the current step as satisfied once its validation predicate passes. Does not advance the flow.
//	@Tags			Flows
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"Flow ID"
//	@Success		200	{object}	FlowResponse	"Updated flow"
//	@Failure		404	{object}	ErrorResponse	"Flow not found"
//	@Failure		409	{object}	ErrorResponse	"Step preconditions not met"
//	@Router			/v1/flows/{id}/complete [post].
func (h *FlowsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	flow, err := h.FlowService.CompleteStep(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}
