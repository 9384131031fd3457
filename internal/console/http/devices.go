package http

import (
	"encoding/json"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// DevicesHandler serves the local device mirror and triggers syncs.
type DevicesHandler struct {
	SyncService *service.DeviceSyncService
}

// HandleList handles GET /v1/devices
//
//	@Summary		List mirrored devices
//	@Description	Returns the locally mirrored devices for a user, newest first. Run a sync to refresh the mirror.
//	@Tags			Devices
//	@Security		BearerAuth
//	@Produce		json
//	@Param			environmentId	query		string	true	"Environment ID"
//	@Param			username		query		string	true	"Username"
//	@Success		200				{array}		DeviceResponse
//	@Failure		400				{object}	ErrorResponse	"Missing query parameters"
//	@Router			/v1/devices [get].
func (h *DevicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	environmentID := r.URL.Query().Get("environmentId")
	username := r.URL.Query().Get("username")
	if environmentID == "" || username == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "environmentId and username are required")
		return
	}

	devices, err := h.SyncService.ListDevices(r.Context(), environmentID, username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, DeviceResponse{
			ID:       d.ID,
			Type:     string(d.Type),
			Status:   string(d.Status),
			Nickname: d.Nickname,
			Phone:    d.Phone,
			Email:    d.Email,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSync handles POST /v1/devices/sync
//
//	@Summary		Sync the device mirror
//	@Description	Fetches all device pages for a user from the gateway into the local mirror. A client disconnect cancels the
//	@Description	sync cleanly; the response then reports cancelled=true with the pages mirrored so far.
//	@Tags			Devices
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SyncRequest			true	"Sync target"
//	@Success		200		{object}	service.SyncResult	"Sync outcome"
//	@Failure		400		{object}	ErrorResponse		"Invalid request"
//	@Failure		502		{object}	ErrorResponse		"Gateway error"
//	@Failure		503		{object}	ErrorResponse		"Worker token invalid"
//	@Router			/v1/devices/sync [post].
func (h *DevicesHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		writeBadJSON(w)
		return
	}
	if req.EnvironmentID == "" || req.Username == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "environmentId and username are required")
		return
	}

	result, err := h.SyncService.Sync(ctx, req.EnvironmentID, req.Username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
