package http

import (
	"encoding/json"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// ActivateHandler handles OTP activation and the TOTP testing aid.
type ActivateHandler struct {
	AuthService *service.AuthenticationService
}

// HandleActivate handles POST /v1/flows/{id}/activate
//
//	@Summary		Validate an activation OTP
//	@Description	Checks the OTP format locally, validates it against the gateway, and moves the flow to the Success step.
//	@Tags			Registration
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Flow ID"
//	@Param			request	body		ActivateRequest	true	"Activation OTP"
//	@Success		200		{object}	FlowResponse	"Updated flow"
//	@Failure		400		{object}	ErrorResponse	"OTP malformed or validation failed"
//	@Failure		404		{object}	ErrorResponse	"Flow not found"
//	@Failure		502		{object}	ErrorResponse	"Gateway rejected the OTP"
//	@Router			/v1/flows/{id}/activate [post].
func (h *ActivateHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	flow, err := h.AuthService.Activate(ctx, r.PathValue("id"), req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, flowResponse(flow))
}

// HandleTOTPPreview handles GET /v1/flows/{id}/totp/preview
//
//	@Summary		Preview the current TOTP code
//	@Description	Returns the code an authenticator app would show right now for the flow's registered TOTP device. Testing aid.
//	@Tags			Registration
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"Flow ID"
//	@Success		200	{object}	TOTPPreviewResponse	"Current code"
//	@Failure		400	{object}	ErrorResponse		"Flow has no TOTP secret"
//	@Failure		404	{object}	ErrorResponse		"Flow not found"
//	@Router			/v1/flows/{id}/totp/preview [get].
func (h *ActivateHandler) HandleTOTPPreview(w http.ResponseWriter, r *http.Request) {
	code, err := h.AuthService.TOTPPreview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TOTPPreviewResponse{Code: code})
}
