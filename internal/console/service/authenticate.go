package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/pingdesk/pingdesk/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrNoTOTPSecret   = errors.New("flow has no TOTP secret")
	ErrNoDeviceYet    = errors.New("flow has no registered device")
	ErrNoActivation   = errors.New("device does not require activation")
	ErrAuthIncomplete = errors.New("authentication did not complete")
)

// authClient is the slice of the gateway client the auth tester needs.
type authClient interface {
	InitAuthentication(ctx context.Context, workerToken string, req pingone.InitAuthenticationRequest) (pingone.InitAuthenticationResponse, error)
	ValidateOTP(ctx context.Context, req pingone.ValidateOTPRequest) (pingone.ValidateOTPResponse, error)
}

// AuthenticationService runs device authentication tests and OTP activation
// against the gateway.
type AuthenticationService struct {
	Store  store.Store
	Client authClient
	Tokens *WorkerTokenService
	Region string
}

// InitAuthentication starts an authentication run for a registered device.
// The returned status is one of the normalized gateway states.
func (s *AuthenticationService) InitAuthentication(ctx context.Context, req pingone.InitAuthenticationRequest) (pingone.InitAuthenticationResponse, error) {
	if !s.Tokens.Valid() {
		return pingone.InitAuthenticationResponse{}, ErrWorkerTokenInvalid
	}
	if req.Region == "" {
		req.Region = s.Region
	}

	resp, err := s.Client.InitAuthentication(ctx, s.Tokens.Token(), req)
	if err != nil {
		return pingone.InitAuthenticationResponse{}, fmt.Errorf("failed to init authentication: %w", err)
	}
	return resp, nil
}

// Activate validates an activation OTP for a flow's device. The OTP format
// is checked locally before any gateway call. An OTP validates against a
// device authentication run; the first attempt starts one and keeps its id
// on the flow so retries reuse it. On success the flow jumps to the Success
// step.
func (s *AuthenticationService) Activate(ctx context.Context, flowID, otpCode string) (domain.FlowSession, error) {
	if ok, msg := ValidateActivationOTP(otpCode); !ok {
		return domain.FlowSession{}, &ValidationError{Fields: map[string]string{"otp": msg}}
	}

	flow, err := s.Store.Flows().GetFlow(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.FlowSession{}, ErrFlowNotFound
	}
	if err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to get flow: %w", err)
	}
	ctx = slogx.WithFlowID(ctx, flow.ID)

	if flow.State.DeviceID == "" {
		return domain.FlowSession{}, ErrNoDeviceYet
	}
	cfg, ok := GetDeviceConfig(flow.Credentials.DeviceType)
	if !ok {
		return domain.FlowSession{}, ErrUnknownDeviceType
	}
	if !cfg.RequiresOTP {
		return domain.FlowSession{}, ErrNoActivation
	}
	if !s.Tokens.Valid() {
		return domain.FlowSession{}, ErrWorkerTokenInvalid
	}

	if flow.State.DeviceAuthID == "" {
		init, err := s.Client.InitAuthentication(ctx, s.Tokens.Token(), pingone.InitAuthenticationRequest{
			EnvironmentID:                flow.Credentials.EnvironmentID,
			Username:                     flow.Credentials.Username,
			DeviceAuthenticationPolicyID: flow.Credentials.DeviceAuthenticationPolicyID,
			DeviceID:                     flow.State.DeviceID,
			Region:                       s.Region,
			UserToken:                    flow.Credentials.UserToken,
		})
		if err != nil {
			slogx.FromContext(ctx).Error("authentication init failed", "error", err)
			return domain.FlowSession{}, asRegistrationError(err)
		}
		if init.DeviceAuthID == "" {
			return domain.FlowSession{}, fmt.Errorf("%w: init returned no device auth id", ErrAuthIncomplete)
		}
		flow.State.DeviceAuthID = init.DeviceAuthID
		if err := s.Store.Flows().UpdateFlow(ctx, flow); err != nil {
			return domain.FlowSession{}, fmt.Errorf("failed to update flow: %w", err)
		}
	}

	resp, err := s.Client.ValidateOTP(ctx, pingone.ValidateOTPRequest{
		EnvironmentID: flow.Credentials.EnvironmentID,
		Username:      flow.Credentials.Username,
		DeviceAuthID:  flow.State.DeviceAuthID,
		OTP:           otpCode,
		Region:        s.Region,
		WorkerToken:   s.Tokens.Token(),
	})
	if err != nil {
		slogx.FromContext(ctx).Error("OTP validation failed", "error", err)
		return domain.FlowSession{}, asRegistrationError(err)
	}
	if resp.Status != pingone.AuthStatusCompleted {
		return domain.FlowSession{}, fmt.Errorf("%w: status %s", ErrAuthIncomplete, resp.Status)
	}

	flow.State.DeviceStatus = domain.StatusActive
	flow.Navigation.MarkComplete(domain.StepActivation)
	flow.Navigation.CurrentStep = domain.StepSuccess
	flow.UpdatedAt = time.Now().UTC()

	if err := s.Store.Flows().UpdateFlow(ctx, flow); err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to update flow: %w", err)
	}

	slogx.FromContext(ctx).Info("device activated", "device_id", flow.State.DeviceID)
	return flow, nil
}

// TOTPPreview returns the code an authenticator app would currently show
// for a flow's just-registered TOTP device. Testing aid only.
func (s *AuthenticationService) TOTPPreview(ctx context.Context, flowID string) (string, error) {
	flow, err := s.Store.Flows().GetFlow(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrFlowNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get flow: %w", err)
	}

	secret := flow.State.TOTPSecret
	if secret == "" && flow.State.KeyURI != "" {
		key, err := otp.NewKeyFromURL(flow.State.KeyURI)
		if err != nil {
			return "", fmt.Errorf("failed to parse key uri: %w", err)
		}
		secret = key.Secret()
	}
	if secret == "" {
		return "", ErrNoTOTPSecret
	}

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP code: %w", err)
	}
	return code, nil
}
