package http

import (
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
)

// DeviceTypesHandler lists the device types the console currently offers.
type DeviceTypesHandler struct {
	Flags *service.FeatureFlagService
}

// HandleList handles GET /v1/devicetypes
//
//	@Summary		List offered device types
//	@Description	Returns the flow configuration for every device type not disabled by a feature flag.
//	@Tags			Devices
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		DeviceTypeResponse
//	@Failure		500	{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/devicetypes [get].
func (h *DeviceTypesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	types, err := h.Flags.EnabledDeviceTypes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]DeviceTypeResponse, 0, len(types))
	for _, t := range types {
		cfg, ok := service.GetDeviceConfig(t)
		if !ok {
			continue
		}
		out = append(out, DeviceTypeResponse{
			DeviceType:     string(cfg.DeviceType),
			DisplayName:    cfg.DisplayName,
			RequiredFields: cfg.RequiredFields,
			OptionalFields: cfg.OptionalFields,
			RequiresOTP:    cfg.RequiresOTP,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
