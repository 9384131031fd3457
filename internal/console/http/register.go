package http

import (
	"encoding/json"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// RegisterHandler handles the orchestrated registration endpoints.
type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// HandleRegister handles POST /v1/flows/{id}/register
//
//	@Summary		Submit a device registration
//	@Description	Runs the registration sequence: worker-token recheck, field mapping, the gateway call, and the step jump.
//	@Description	A user-flow submission without a user token is parked and reported with loginRequired=true; no gateway call is made.
//	@Tags			Registration
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Flow ID"
//	@Param			request	body		RegisterRequest		true	"Field overrides (FIDO2 credential arrives here)"
//	@Success		200		{object}	RegisterResponse	"Registration outcome"
//	@Failure		400		{object}	ErrorResponse		"Invalid request"
//	@Failure		404		{object}	ErrorResponse		"Flow not found"
//	@Failure		502		{object}	ErrorResponse		"Gateway rejected the registration"
//	@Failure		503		{object}	ErrorResponse		"Worker token invalid"
//	@Router			/v1/flows/{id}/register [post].
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	outcome, err := h.RegistrationService.Register(ctx, r.PathValue("id"), req.Fields)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, RegisterResponse{
		Flow:          flowResponse(outcome.Flow),
		LoginRequired: outcome.LoginRequired,
	})
}

// HandleResume handles POST /v1/flows/{id}/resume
//
//	@Summary		Resume a parked registration
//	@Description	Supplies the user token a parked user-flow submission was waiting for and replays it against the gateway.
//	@Tags			Registration
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Flow ID"
//	@Param			request	body		ResumeRequest		true	"User access token"
//	@Success		200		{object}	RegisterResponse	"Registration outcome"
//	@Failure		400		{object}	ErrorResponse		"No pending registration or token invalid"
//	@Failure		404		{object}	ErrorResponse		"Flow not found"
//	@Failure		502		{object}	ErrorResponse		"Gateway rejected the registration"
//	@Router			/v1/flows/{id}/resume [post].
func (h *RegisterHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	outcome, err := h.RegistrationService.ResumePending(ctx, r.PathValue("id"), req.UserToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, RegisterResponse{
		Flow: flowResponse(outcome.Flow),
	})
}
