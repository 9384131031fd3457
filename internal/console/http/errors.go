package http

import (
	"errors"
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// writeServiceError maps service errors onto HTTP responses. Validation
// failures carry their field map; gateway failures keep the raw upstream
// message plus any remediation hint.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "validation_failed",
			ErrorDescription: valErr.Error(),
			Fields:           valErr.Fields,
			Warnings:         valErr.Warnings,
		})
		return
	}

	var regErr *service.RegistrationError
	if errors.As(err, &regErr) {
		httpx.WriteJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:            "gateway_error",
			ErrorDescription: regErr.Message,
			Hint:             regErr.Hint,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrFlowNotFound),
		errors.Is(err, service.ErrFlagNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrWorkerTokenInvalid):
		httpx.WriteError(w, http.StatusServiceUnavailable, "worker_token_invalid", err.Error())
	case errors.Is(err, service.ErrStepGuardFailed):
		httpx.WriteError(w, http.StatusConflict, "step_guard_failed", err.Error())
	case errors.Is(err, service.ErrUnknownDeviceType),
		errors.Is(err, service.ErrUnknownFlowType),
		errors.Is(err, service.ErrDeviceTypeGated),
		errors.Is(err, service.ErrStepOutOfRange),
		errors.Is(err, service.ErrUserTokenRequired),
		errors.Is(err, service.ErrNoPendingRegistration),
		errors.Is(err, service.ErrNoDeviceYet),
		errors.Is(err, service.ErrNoActivation),
		errors.Is(err, service.ErrNoTOTPSecret),
		errors.Is(err, service.ErrAuthIncomplete):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
}
