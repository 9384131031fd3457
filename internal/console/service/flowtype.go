package service

import (
	"errors"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

var (
	ErrUnknownFlowType    = errors.New("unknown flow type")
	ErrWorkerTokenInvalid = errors.New("worker token is missing or expired")
	ErrUserTokenRequired  = errors.New("user flow requires a user access token")
)

// FlowResolution is the outcome of flow-type resolution: the device status
// to request from the gateway and the kind of token the flow presents.
type FlowResolution struct {
	TargetStatus domain.DeviceStatus
	TokenType    domain.TokenType
}

// ResolveFlowType maps a flow type to the target device status and token
// kind. User flows always request ACTIVATION_REQUIRED regardless of device
// type.
func ResolveFlowType(flowType domain.FlowType) (FlowResolution, error) {
	switch flowType {
	case domain.FlowAdminActive:
		return FlowResolution{
			TargetStatus: domain.StatusActive,
			TokenType:    domain.TokenWorker,
		}, nil
	case domain.FlowAdminActivationRequired:
		return FlowResolution{
			TargetStatus: domain.StatusActivationRequired,
			TokenType:    domain.TokenWorker,
		}, nil
	case domain.FlowUser:
		return FlowResolution{
			TargetStatus: domain.StatusActivationRequired,
			TokenType:    domain.TokenUser,
		}, nil
	}
	return FlowResolution{}, ErrUnknownFlowType
}

// CheckTokenRequirement verifies the resolved flow can proceed with the
// tokens at hand. There is no silent downgrade to a different flow type;
// a missing token blocks the operation.
func CheckTokenRequirement(res FlowResolution, workerTokenValid bool, userToken string) error {
	switch res.TokenType {
	case domain.TokenUser:
		if userToken == "" {
			return ErrUserTokenRequired
		}
	default:
		if !workerTokenValid {
			return ErrWorkerTokenInvalid
		}
	}
	return nil
}

// FIDO2Complete reports whether a FIDO2 registration is functionally
// complete. The WebAuthn ceremony happens in the browser; once the caller
// supplies both halves of the credential the device is considered
// registered, whatever status the gateway reports.
func FIDO2Complete(state domain.MFAState) bool {
	return state.CredentialID != "" && state.PublicKey != ""
}
