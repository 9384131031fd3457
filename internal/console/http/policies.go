package http

import (
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
)

// PoliciesHandler serves the cached device authentication policy list.
type PoliciesHandler struct {
	PolicyService *service.PolicyService
}

// HandleList handles GET /v1/policies
//
//	@Summary		List device authentication policies
//	@Description	Returns the environment's device authentication policies, served from a short-lived cache.
//	@Tags			Policies
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		pingone.DeviceAuthenticationPolicy
//	@Failure		502	{object}	ErrorResponse	"Gateway error"
//	@Failure		503	{object}	ErrorResponse	"Worker token invalid"
//	@Router			/v1/policies [get].
func (h *PoliciesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	policies, err := h.PolicyService.ListPolicies(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, policies)
}
