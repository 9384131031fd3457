package http

import (
	"encoding/json"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// FlagsHandler administers the persisted feature flags.
type FlagsHandler struct {
	Flags *service.FeatureFlagService
}

// HandleList handles GET /v1/flags
//
//	@Summary		List feature flags
//	@Tags			Flags
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		FlagResponse
//	@Failure		500	{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/flags [get].
func (h *FlagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	flags, err := h.Flags.ListFlags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]FlagResponse, 0, len(flags))
	for _, f := range flags {
		out = append(out, flagResponse(f))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /v1/flags/{key}
//
//	@Summary		Get a feature flag
//	@Tags			Flags
//	@Security		BearerAuth
//	@Produce		json
//	@Param			key	path		string	true	"Flag key"
//	@Success		200	{object}	FlagResponse
//	@Failure		404	{object}	ErrorResponse	"Flag not found"
//	@Router			/v1/flags/{key} [get].
func (h *FlagsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flag, err := h.Flags.GetFlag(r.Context(), r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flagResponse(flag))
}

// HandleSet handles PUT /v1/flags/{key}
//
//	@Summary		Set a feature flag
//	@Description	Creates or updates a flag. Device gating flags use the "device:<TYPE>" key convention, e.g. "device:FIDO2".
//	@Tags			Flags
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			key		path		string		true	"Flag key"
//	@Param			request	body		FlagRequest	true	"Flag value"
//	@Success		200		{object}	FlagResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid JSON body"
//	@Router			/v1/flags/{key} [put].
func (h *FlagsHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}

	key := r.PathValue("key")
	flag, err := h.Flags.SetFlag(ctx, key, req.Enabled, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("feature flag updated", "key", key, "enabled", req.Enabled)
	httpx.WriteJSON(w, http.StatusOK, flagResponse(flag))
}

func flagResponse(f domain.FeatureFlag) FlagResponse {
	return FlagResponse{
		Key:         f.Key,
		Enabled:     f.Enabled,
		Description: f.Description,
		UpdatedAt:   f.UpdatedAt,
	}
}
