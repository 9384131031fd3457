package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

// fakeGateway records registration calls and serves a canned response.
type fakeGateway struct {
	resp   pingone.RegisterDeviceResponse
	err    error
	calls  []pingone.RegisterDeviceRequest
	tokens []string
}

func (g *fakeGateway) RegisterDevice(_ context.Context, workerToken string, req pingone.RegisterDeviceRequest) (pingone.RegisterDeviceResponse, error) {
	g.tokens = append(g.tokens, workerToken)
	g.calls = append(g.calls, req)
	if g.err != nil {
		return pingone.RegisterDeviceResponse{}, g.err
	}
	return g.resp, nil
}

func newRegistrationService(st store.Store, gw *fakeGateway, tokens *WorkerTokenService) *RegistrationService {
	return &RegistrationService{
		Store:      st,
		Client:     gw,
		Tokens:     tokens,
		PendingTTL: time.Hour,
	}
}

func TestRegisterSMSAdminActive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	flow := createTestFlow(t, st, tokens, CreateFlowParams{
		FlowType:      domain.FlowAdminActive,
		DeviceType:    domain.DeviceSMS,
		EnvironmentID: "env-1",
		Username:      "alice",
		Fields: map[string]string{
			"phoneNumber": "555-123-4567",
			"countryCode": "+1",
		},
	})

	gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{DeviceID: "dev-1", Status: "ACTIVE"}}
	svc := newRegistrationService(st, gw, tokens)

	outcome, err := svc.Register(ctx, flow.ID, nil)
	require.NoError(t, err)
	require.False(t, outcome.LoginRequired)

	require.Len(t, gw.calls, 1)
	req := gw.calls[0]
	require.Equal(t, "env-1", req.EnvironmentID)
	require.Equal(t, "alice", req.Username)
	require.Equal(t, "SMS", req.Type)
	require.Equal(t, "worker", req.TokenType)
	require.Equal(t, "ACTIVE", req.Status)
	require.Equal(t, "+1.5551234567", req.Phone)
	require.Equal(t, "worker-token", gw.tokens[0])

	require.Equal(t, "dev-1", outcome.Flow.State.DeviceID)
	require.Equal(t, domain.StatusActive, outcome.Flow.State.DeviceStatus)
	require.Equal(t, domain.StepSuccess, outcome.Flow.Navigation.CurrentStep)
	require.True(t, outcome.Flow.Navigation.Completed(domain.StepRegistration))

	// The persisted flow matches the returned one.
	stored, err := st.Flows().GetFlow(ctx, flow.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StepSuccess, stored.Navigation.CurrentStep)
	require.Equal(t, "dev-1", stored.State.DeviceID)

	logs, err := st.DebugLogs().ListFlowLogs(ctx, flow.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
}

func TestRegisterActivationRequiredGoesToActivation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	flow := createTestFlow(t, st, tokens, CreateFlowParams{
		FlowType:      domain.FlowAdminActivationRequired,
		DeviceType:    domain.DeviceEmail,
		EnvironmentID: "env-1",
		Username:      "alice",
		Fields:        map[string]string{"email": "alice@example.com"},
	})

	gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{DeviceID: "dev-2", Status: "ACTIVATION_REQUIRED"}}
	svc := newRegistrationService(st, gw, tokens)

	outcome, err := svc.Register(ctx, flow.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "ACTIVATION_REQUIRED", gw.calls[0].Status)
	require.Equal(t, domain.StepActivation, outcome.Flow.Navigation.CurrentStep)
}

func TestRegisterTOTPAlwaysShowsQRStep(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	flow := createTestFlow(t, st, tokens, CreateFlowParams{
		FlowType:      domain.FlowAdminActive,
		DeviceType:    domain.DeviceTOTP,
		EnvironmentID: "env-1",
		Username:      "alice",
	})

	// Even an ACTIVE TOTP device routes to the activation step so the
	// operator can scan the QR code.
	gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{
		DeviceID: "dev-3",
		Status:   "ACTIVE",
		Secret:   "JBSWY3DPEHPK3PXP",
		KeyURI:   "otpauth://totp/console:alice?secret=JBSWY3DPEHPK3PXP",
	}}
	svc := newRegistrationService(st, gw, tokens)

	outcome, err := svc.Register(ctx, flow.ID, nil)
	require.NoError(t, err)
	require.Equal(t, domain.StepActivation, outcome.Flow.Navigation.CurrentStep)
	require.Equal(t, "JBSWY3DPEHPK3PXP", outcome.Flow.State.TOTPSecret)
	require.True(t, outcome.Flow.State.ShowQR)
}

func TestRegisterUserFlowWithoutTokenParks(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	flow := createTestFlow(t, st, tokens, CreateFlowParams{
		FlowType:      domain.FlowUser,
		DeviceType:    domain.DeviceSMS,
		EnvironmentID: "env-1",
		Username:      "alice",
		Fields: map[string]string{
			"phoneNumber": "512-520-1234",
			"countryCode": "+1",
		},
	})

	gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{DeviceID: "dev-4", Status: "ACTIVATION_REQUIRED"}}
	svc := newRegistrationService(st, gw, tokens)

	fields := map[string]string{"phoneNumber": "512-520-1234", "countryCode": "+1"}
	outcome, err := svc.Register(ctx, flow.ID, fields)
	require.NoError(t, err)
	require.True(t, outcome.LoginRequired)

	// No gateway call was made; the submission was parked instead.
	require.Empty(t, gw.calls)
	pending, err := st.PendingRegistrations().GetPendingRegistrationByFlow(ctx, flow.ID)
	require.NoError(t, err)
	require.Equal(t, flow.ID, pending.FlowID)
	require.Equal(t, fields, pending.Fields)

	// Resuming with a user token replays the parked submission.
	resumed, err := svc.ResumePending(ctx, flow.ID, "user-access-token")
	require.NoError(t, err)
	require.False(t, resumed.LoginRequired)
	require.Len(t, gw.calls, 1)
	require.Equal(t, "user", gw.calls[0].TokenType)
	require.Equal(t, "user-access-token", gw.calls[0].UserToken)
	require.Equal(t, "+1.5125201234", gw.calls[0].Phone)

	_, err = st.PendingRegistrations().GetPendingRegistrationByFlow(ctx, flow.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.ResumePending(ctx, flow.ID, "user-access-token")
	require.ErrorIs(t, err, ErrNoPendingRegistration)
}

func TestRegisterTooManyDevicesGetsHint(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	flow := createTestFlow(t, st, tokens, CreateFlowParams{
		FlowType:      domain.FlowAdminActive,
		DeviceType:    domain.DeviceSMS,
		EnvironmentID: "env-1",
		Username:      "alice",
		Fields: map[string]string{
			"phoneNumber": "555-123-4567",
			"countryCode": "+1",
		},
	})

	gw := &fakeGateway{err: &pingone.APIError{
		StatusCode: 400,
		Code:       "CONSTRAINT_VIOLATION",
		Message:    "The user has too many devices",
	}}
	svc := newRegistrationService(st, gw, tokens)

	_, err := svc.Register(ctx, flow.ID, nil)
	require.Error(t, err)

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	require.Equal(t, "The user has too many devices", regErr.Message)
	require.NotEmpty(t, regErr.Hint)

	// The flow stays on its current step so the operator can retry.
	stored, err := st.Flows().GetFlow(ctx, flow.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StepConfigure, stored.Navigation.CurrentStep)
	require.Empty(t, stored.State.DeviceID)

	logs, err := st.DebugLogs().ListFlowLogs(ctx, flow.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	require.Equal(t, "error", logs[0].Level)
}

func TestRegisterFIDO2CompleteSkipsActivation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newValidTokenService(t)

	t.Run("admin flow jumps to docs", func(t *testing.T) {
		flow := createTestFlow(t, st, tokens, CreateFlowParams{
			FlowType:      domain.FlowAdminActive,
			DeviceType:    domain.DeviceFIDO2,
			EnvironmentID: "env-1",
			Username:      "alice",
		})

		// The gateway reports ACTIVATION_REQUIRED but the browser ceremony
		// already produced a full credential; the flow-type status wins.
		gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{DeviceID: "dev-5", Status: "ACTIVATION_REQUIRED"}}
		svc := newRegistrationService(st, gw, tokens)

		outcome, err := svc.Register(ctx, flow.ID, map[string]string{
			"credentialId": "cred-abc",
			"publicKey":    "pk-xyz",
		})
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, outcome.Flow.State.DeviceStatus)
		require.Equal(t, domain.StepDocs, outcome.Flow.Navigation.CurrentStep)
	})

	t.Run("user flow advances one step", func(t *testing.T) {
		flow := createTestFlow(t, st, tokens, CreateFlowParams{
			FlowType:      domain.FlowUser,
			DeviceType:    domain.DeviceFIDO2,
			EnvironmentID: "env-1",
			Username:      "bob",
			UserToken:     "user-access-token",
		})

		gw := &fakeGateway{resp: pingone.RegisterDeviceResponse{DeviceID: "dev-6", Status: "ACTIVATION_REQUIRED"}}
		svc := newRegistrationService(st, gw, tokens)

		outcome, err := svc.Register(ctx, flow.ID, map[string]string{
			"credentialId": "cred-def",
			"publicKey":    "pk-uvw",
		})
		require.NoError(t, err)
		require.Equal(t, domain.StatusActivationRequired, outcome.Flow.State.DeviceStatus)
		require.Equal(t, domain.StepUserLogin, outcome.Flow.Navigation.CurrentStep)
	})
}

func TestRegisterRequiresWorkerToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	valid := newValidTokenService(t)

	flow := createTestFlow(t, st, valid, CreateFlowParams{
		FlowType:      domain.FlowAdminActive,
		DeviceType:    domain.DeviceSMS,
		EnvironmentID: "env-1",
		Username:      "alice",
		Fields: map[string]string{
			"phoneNumber": "555-123-4567",
			"countryCode": "+1",
		},
	})

	gw := &fakeGateway{}
	svc := newRegistrationService(st, gw, newInvalidTokenService())

	_, err := svc.Register(ctx, flow.ID, nil)
	require.ErrorIs(t, err, ErrWorkerTokenInvalid)
	require.Empty(t, gw.calls)
}

func TestRegisterUnknownFlow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newRegistrationService(st, &fakeGateway{}, newValidTokenService(t))

	_, err := svc.Register(ctx, "missing", nil)
	require.ErrorIs(t, err, ErrFlowNotFound)
}

func TestAsRegistrationErrorFallbackMessage(t *testing.T) {
	t.Parallel()

	err := asRegistrationError(errors.New("connection refused"))
	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	require.Equal(t, "connection refused", regErr.Message)
	require.Empty(t, regErr.Hint)
}
