package http

import (
	"encoding/json"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// AuthenticationsHandler runs device authentication tests.
type AuthenticationsHandler struct {
	AuthService *service.AuthenticationService
}

// HandleInit handles POST /v1/authentications
//
//	@Summary		Start a device authentication test
//	@Description	Initializes a device authentication run against the gateway. The returned status is normalized across the
//	@Description	gateway's status/nextStep variants: OTP_REQUIRED, ASSERTION_REQUIRED, PUSH_CONFIRMATION_REQUIRED, COMPLETED, DEVICE_SELECTION_REQUIRED.
//	@Tags			Authentication
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pingone.InitAuthenticationRequest	true	"Authentication parameters"
//	@Success		200		{object}	pingone.InitAuthenticationResponse	"Normalized authentication state"
//	@Failure		400		{object}	ErrorResponse						"Invalid request"
//	@Failure		503		{object}	ErrorResponse						"Worker token invalid"
//	@Router			/v1/authentications [post].
func (h *AuthenticationsHandler) HandleInit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req pingone.InitAuthenticationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	resp, err := h.AuthService.InitAuthentication(ctx, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
