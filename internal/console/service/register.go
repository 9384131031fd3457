package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/idx"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

var ErrNoPendingRegistration = errors.New("no pending registration for flow")

// RegistrationError is a gateway failure surfaced to the operator. Message
// carries the raw upstream text; Hint is set for conditions with a known
// remediation, like the device cap.
type RegistrationError struct {
	Message string
	Hint    string
	err     error
}

func (e *RegistrationError) Error() string { return e.Message }
func (e *RegistrationError) Unwrap() error { return e.err }

// RegisterOutcome is the result of one registration submission.
type RegisterOutcome struct {
	Flow domain.FlowSession

	// LoginRequired is set when a user-flow submission was parked because
	// no user token is available yet. No gateway call was made.
	LoginRequired bool
}

// registerClient is the slice of the gateway client the orchestrator needs.
type registerClient interface {
	RegisterDevice(ctx context.Context, workerToken string, req pingone.RegisterDeviceRequest) (pingone.RegisterDeviceResponse, error)
}

// RegistrationService sequences a device registration: token recheck, field
// mapping, the gateway call, response interpretation, and the step jump.
// Flow state and the debug log entry are written in one transaction so the
// update looks atomic to readers.
type RegistrationService struct {
	Store      store.Store
	Client     registerClient
	Tokens     *WorkerTokenService
	PendingTTL time.Duration
}

// Register runs one registration submission for a flow. The fields map
// overrides and extends the credentials captured at Configure time (e.g.
// the FIDO2 credential arrives here, after the browser ceremony).
func (s *RegistrationService) Register(ctx context.Context, flowID string, fields map[string]string) (RegisterOutcome, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return RegisterOutcome{}, err
	}
	ctx = slogx.WithFlowID(ctx, flow.ID)

	// The subscribed token status may be stale; recheck synchronously
	// right before committing to a gateway call.
	if !s.Tokens.Valid() {
		return RegisterOutcome{}, ErrWorkerTokenInvalid
	}

	applyFields(&flow, fields)

	if flow.FlowType == domain.FlowUser && !UserTokenValid(flow.Credentials.UserToken) {
		return s.park(ctx, flow, fields)
	}

	return s.submit(ctx, flow)
}

// ResumePending replays a parked user-flow submission once a user token has
// been supplied.
func (s *RegistrationService) ResumePending(ctx context.Context, flowID, userToken string) (RegisterOutcome, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return RegisterOutcome{}, err
	}
	ctx = slogx.WithFlowID(ctx, flow.ID)

	pending, err := s.Store.PendingRegistrations().GetPendingRegistrationByFlow(ctx, flowID)
	if errors.Is(err, store.ErrNotFound) {
		return RegisterOutcome{}, ErrNoPendingRegistration
	}
	if err != nil {
		return RegisterOutcome{}, fmt.Errorf("failed to get pending registration: %w", err)
	}

	if !s.Tokens.Valid() {
		return RegisterOutcome{}, ErrWorkerTokenInvalid
	}
	if !UserTokenValid(userToken) {
		return RegisterOutcome{}, ErrUserTokenRequired
	}

	flow.Credentials.UserToken = userToken
	applyFields(&flow, pending.Fields)

	outcome, err := s.submit(ctx, flow)
	if err != nil {
		return RegisterOutcome{}, err
	}

	if err := s.Store.PendingRegistrations().DeletePendingRegistration(ctx, pending.ID); err != nil {
		return RegisterOutcome{}, fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return outcome, nil
}

// park persists a user-flow submission until a user token arrives. No
// gateway call is made.
func (s *RegistrationService) park(ctx context.Context, flow domain.FlowSession, fields map[string]string) (RegisterOutcome, error) {
	now := time.Now().UTC()
	pending := domain.PendingRegistration{
		ID:         idx.New().String(),
		FlowID:     flow.ID,
		DeviceType: flow.Credentials.DeviceType,
		FlowType:   flow.FlowType,
		Fields:     fields,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.PendingTTL),
	}
	if pending.Fields == nil {
		pending.Fields = map[string]string{}
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PendingRegistrations().CreatePendingRegistration(ctx, pending); err != nil {
			return fmt.Errorf("failed to park registration: %w", err)
		}
		return s.appendLog(ctx, tx, flow.ID, "info", "registration parked awaiting user login", "")
	})
	if err != nil {
		return RegisterOutcome{}, err
	}

	slogx.FromContext(ctx).Info("registration parked, user login required",
		"device_type", flow.Credentials.DeviceType)
	return RegisterOutcome{Flow: flow, LoginRequired: true}, nil
}

func (s *RegistrationService) submit(ctx context.Context, flow domain.FlowSession) (RegisterOutcome, error) {
	res, err := ResolveFlowType(flow.FlowType)
	if err != nil {
		return RegisterOutcome{}, err
	}

	req := buildRegisterRequest(flow, res)

	resp, err := s.Client.RegisterDevice(ctx, s.Tokens.Token(), req)
	if err != nil {
		// The operator stays on the form to retry; no navigation happens
		// on failure.
		s.logFailure(ctx, flow.ID, err)
		return RegisterOutcome{}, asRegistrationError(err)
	}

	interpretResponse(&flow, res, resp)

	flow.UpdatedAt = time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Flows().UpdateFlow(ctx, flow); err != nil {
			return fmt.Errorf("failed to update flow: %w", err)
		}
		detail := fmt.Sprintf("deviceId=%s status=%s step=%d", flow.State.DeviceID, flow.State.DeviceStatus, flow.Navigation.CurrentStep)
		return s.appendLog(ctx, tx, flow.ID, "info", "device registered", detail)
	})
	if err != nil {
		return RegisterOutcome{}, err
	}

	slogx.FromContext(ctx).Info("device registered",
		"device_type", flow.Credentials.DeviceType,
		"device_id", flow.State.DeviceID,
		"status", flow.State.DeviceStatus,
		"step", int(flow.Navigation.CurrentStep))
	return RegisterOutcome{Flow: flow}, nil
}

// buildRegisterRequest maps form field names to the gateway contract:
// deviceName becomes nickname, phoneNumber+countryCode collapse into one
// phone string.
func buildRegisterRequest(flow domain.FlowSession, res FlowResolution) pingone.RegisterDeviceRequest {
	creds := flow.Credentials

	req := pingone.RegisterDeviceRequest{
		EnvironmentID: creds.EnvironmentID,
		Username:      creds.Username,
		Type:          string(creds.DeviceType),
		TokenType:     string(res.TokenType),
		Status:        string(res.TargetStatus),
		Nickname:      creds.DeviceName,
		Email:         creds.Email,
	}

	if creds.PhoneNumber != "" {
		req.Phone = FullPhoneNumber(creds.CountryCode, creds.PhoneNumber)
	}
	if res.TokenType == domain.TokenUser {
		req.UserToken = creds.UserToken
	}
	if creds.DeviceType == domain.DeviceTOTP && creds.DeviceAuthenticationPolicyID != "" {
		req.Policy = creds.DeviceAuthenticationPolicyID
	}
	if creds.DeviceType == domain.DeviceFIDO2 {
		req.CredentialID = flow.State.CredentialID
		req.PublicKey = flow.State.PublicKey
	}

	return req
}

// interpretResponse records the gateway result on the flow state and picks
// the next step.
func interpretResponse(flow *domain.FlowSession, res FlowResolution, resp pingone.RegisterDeviceResponse) {
	flow.State.DeviceID = resp.DeviceID
	flow.State.DeviceStatus = domain.DeviceStatus(resp.Status)

	deviceType := flow.Credentials.DeviceType
	switch deviceType {
	case domain.DeviceTOTP:
		flow.State.TOTPSecret = resp.Secret
		flow.State.KeyURI = resp.KeyURI
		flow.State.ShowQR = resp.Secret != "" || resp.KeyURI != ""
	case domain.DeviceMobile:
		flow.State.PairingKey = resp.PairingKey
	case domain.DeviceFIDO2:
		if len(resp.PublicKeyCredentialCreationOptions) > 0 {
			flow.State.CreationOptions = string(resp.PublicKeyCredentialCreationOptions)
		}
	}

	flow.Navigation.MarkComplete(domain.StepRegistration)

	// FIDO2 with a completed browser credential is functionally registered
	// whatever status the gateway reports. The flow-type-derived status
	// stays authoritative.
	if deviceType == domain.DeviceFIDO2 && FIDO2Complete(flow.State) {
		flow.State.DeviceStatus = res.TargetStatus
		if flow.FlowType == domain.FlowUser {
			GoToNext(&flow.Navigation)
		} else {
			flow.Navigation.CurrentStep = domain.StepDocs
		}
		return
	}

	switch {
	case flow.State.DeviceStatus == domain.StatusActivationRequired:
		flow.Navigation.CurrentStep = domain.StepActivation
	case deviceType == domain.DeviceTOTP:
		// The operator needs the QR step even when the device comes back
		// ACTIVE.
		flow.Navigation.CurrentStep = domain.StepActivation
	case flow.State.DeviceStatus == domain.StatusActive:
		flow.Navigation.CurrentStep = domain.StepSuccess
	default:
		flow.Navigation.CurrentStep = domain.StepActivation
	}
}

func applyFields(flow *domain.FlowSession, fields map[string]string) {
	if v, ok := fields["phoneNumber"]; ok {
		flow.Credentials.PhoneNumber = v
	}
	if v, ok := fields["countryCode"]; ok {
		flow.Credentials.CountryCode = v
	}
	if v, ok := fields["email"]; ok {
		flow.Credentials.Email = v
	}
	if v, ok := fields["deviceName"]; ok {
		flow.Credentials.DeviceName = v
	}
	if v, ok := fields["credentialId"]; ok {
		flow.State.CredentialID = v
	}
	if v, ok := fields["publicKey"]; ok {
		flow.State.PublicKey = v
	}
}

func (s *RegistrationService) getFlow(ctx context.Context, id string) (domain.FlowSession, error) {
	flow, err := s.Store.Flows().GetFlow(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.FlowSession{}, ErrFlowNotFound
	}
	if err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to get flow: %w", err)
	}
	return flow, nil
}

func (s *RegistrationService) appendLog(ctx context.Context, tx store.Tx, flowID, level, message, detail string) error {
	entry := domain.DebugLogEntry{
		ID:        idx.New().String(),
		FlowID:    flowID,
		Level:     level,
		Message:   message,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.DebugLogs().AppendLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to append debug log: %w", err)
	}
	return nil
}

func (s *RegistrationService) logFailure(ctx context.Context, flowID string, cause error) {
	entry := domain.DebugLogEntry{
		ID:        idx.New().String(),
		FlowID:    flowID,
		Level:     "error",
		Message:   "registration failed",
		Detail:    cause.Error(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.DebugLogs().AppendLog(ctx, entry); err != nil {
		slogx.FromContext(ctx).Error("failed to append debug log", "error", err)
	}
	slogx.FromContext(ctx).Error("registration failed", "error", cause)
}

// asRegistrationError converts a gateway error into an operator-facing one,
// preserving the raw upstream message. The device cap gets an actionable
// hint.
func asRegistrationError(err error) error {
	msg := err.Error()
	var apiErr *pingone.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
		if msg == "" {
			msg = apiErr.Code
		}
	}

	regErr := &RegistrationError{Message: msg, err: err}
	if pingone.IsTooManyDevices(err) {
		regErr.Hint = "The user has reached the device limit. Remove an existing device under Devices and retry."
	}
	if regErr.Hint == "" && strings.TrimSpace(regErr.Message) == "" {
		regErr.Message = "registration failed"
	}
	return regErr
}
