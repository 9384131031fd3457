package http

import (
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/service"
)

// ErrorResponse is the JSON error body used across the console API.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description"`
	Fields           map[string]string `json:"fields,omitempty"`
	Warnings         map[string]string `json:"warnings,omitempty"`
	Hint             string            `json:"hint,omitempty"`
}

// CreateFlowRequest opens a new registration flow (the Configure step).
type CreateFlowRequest struct {
	FlowType      string            `json:"flowType" example:"admin-active"`
	DeviceType    string            `json:"deviceType" example:"SMS"`
	EnvironmentID string            `json:"environmentId"`
	Username      string            `json:"username"`
	UserToken     string            `json:"userToken,omitempty"`
	PolicyID      string            `json:"policyId,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// StepResponse is one wizard step's metadata.
type StepResponse struct {
	Step       int    `json:"step"`
	Label      string `json:"label"`
	NextHidden bool   `json:"nextHidden"`
	Completed  bool   `json:"completed"`
}

// FlowResponse is the full flow session view.
type FlowResponse struct {
	ID            string         `json:"id"`
	FlowType      string         `json:"flowType"`
	DeviceType    string         `json:"deviceType"`
	EnvironmentID string         `json:"environmentId"`
	Username      string         `json:"username"`
	TokenType     string         `json:"tokenType"`
	PolicyID      string         `json:"policyId,omitempty"`
	CurrentStep   int            `json:"currentStep"`
	Steps         []StepResponse `json:"steps"`

	DeviceID     string `json:"deviceId,omitempty"`
	DeviceStatus string `json:"deviceStatus,omitempty"`

	// TOTP
	TOTPSecret string `json:"totpSecret,omitempty"`
	KeyURI     string `json:"keyUri,omitempty"`
	ShowQR     bool   `json:"showQr,omitempty"`

	// Mobile
	PairingKey string `json:"pairingKey,omitempty"`

	// FIDO2
	CreationOptions string `json:"publicKeyCredentialCreationOptions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest submits a registration for a flow. Fields override and
// extend the credentials captured at Configure time.
type RegisterRequest struct {
	Fields map[string]string `json:"fields,omitempty"`
}

// RegisterResponse is the registration outcome.
type RegisterResponse struct {
	Flow          FlowResponse `json:"flow"`
	LoginRequired bool         `json:"loginRequired"`
}

// ResumeRequest supplies the user token that unblocks a parked user-flow
// registration.
type ResumeRequest struct {
	UserToken string `json:"userToken"`
}

// ActivateRequest validates an activation OTP for a flow's device.
type ActivateRequest struct {
	OTP string `json:"otp" example:"123456"`
}

// TOTPPreviewResponse carries the code an authenticator would currently
// show.
type TOTPPreviewResponse struct {
	Code string `json:"code"`
}

// DeviceTypeResponse describes one offered device type.
type DeviceTypeResponse struct {
	DeviceType     string   `json:"deviceType"`
	DisplayName    string   `json:"displayName"`
	RequiredFields []string `json:"requiredFields"`
	OptionalFields []string `json:"optionalFields"`
	RequiresOTP    bool     `json:"requiresOtp"`
}

// DeviceResponse is one mirrored device.
type DeviceResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Nickname string `json:"nickname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// SyncRequest asks for a device mirror refresh.
type SyncRequest struct {
	EnvironmentID string `json:"environmentId"`
	Username      string `json:"username"`
}

// FlagRequest sets a feature flag.
type FlagRequest struct {
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

// FlagResponse is one feature flag.
type FlagResponse struct {
	Key         string    `json:"key"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LogEntryResponse is one debug log entry.
type LogEntryResponse struct {
	ID        string    `json:"id"`
	FlowID    string    `json:"flowId,omitempty"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthResponse is the livez/readyz body.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database    string `json:"database"`
	WorkerToken string `json:"worker_token"`
}

func flowResponse(flow domain.FlowSession) FlowResponse {
	resp := FlowResponse{
		ID:            flow.ID,
		FlowType:      string(flow.FlowType),
		DeviceType:    string(flow.Credentials.DeviceType),
		EnvironmentID: flow.Credentials.EnvironmentID,
		Username:      flow.Credentials.Username,
		TokenType:     string(flow.Credentials.TokenType),
		PolicyID:      flow.Credentials.DeviceAuthenticationPolicyID,
		CurrentStep:   int(flow.Navigation.CurrentStep),

		DeviceID:     flow.State.DeviceID,
		DeviceStatus: string(flow.State.DeviceStatus),

		TOTPSecret:      flow.State.TOTPSecret,
		KeyURI:          flow.State.KeyURI,
		ShowQR:          flow.State.ShowQR,
		PairingKey:      flow.State.PairingKey,
		CreationOptions: flow.State.CreationOptions,

		CreatedAt: flow.CreatedAt,
		UpdatedAt: flow.UpdatedAt,
		ExpiresAt: flow.ExpiresAt,
	}

	if cfg, ok := service.GetDeviceConfig(flow.Credentials.DeviceType); ok {
		for _, meta := range service.StepsFor(cfg, flow.Navigation) {
			resp.Steps = append(resp.Steps, StepResponse{
				Step:       int(meta.Step),
				Label:      meta.Label,
				NextHidden: meta.NextHidden,
				Completed:  meta.Completed,
			})
		}
	}
	return resp
}
