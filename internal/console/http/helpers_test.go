package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/internal/console/store/drivers/sqlite"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

// fakeGateway stands in for the PingOne client across every service.
type fakeGateway struct {
	registerResp pingone.RegisterDeviceResponse
	registerErr  error
	initResp     pingone.InitAuthenticationResponse
	validateResp pingone.ValidateOTPResponse
	devicesPage  pingone.DevicesPage
	policies     []pingone.DeviceAuthenticationPolicy

	registerCalls int
	lastValidate  pingone.ValidateOTPRequest
}

func (g *fakeGateway) ClientCredentialsToken(_ context.Context) (pingone.TokenResponse, error) {
	return pingone.TokenResponse{AccessToken: "worker-token", ExpiresIn: 3600}, nil
}

func (g *fakeGateway) RegisterDevice(_ context.Context, _ string, _ pingone.RegisterDeviceRequest) (pingone.RegisterDeviceResponse, error) {
	g.registerCalls++
	if g.registerErr != nil {
		return pingone.RegisterDeviceResponse{}, g.registerErr
	}
	return g.registerResp, nil
}

func (g *fakeGateway) InitAuthentication(_ context.Context, _ string, _ pingone.InitAuthenticationRequest) (pingone.InitAuthenticationResponse, error) {
	return g.initResp, nil
}

func (g *fakeGateway) ValidateOTP(_ context.Context, req pingone.ValidateOTPRequest) (pingone.ValidateOTPResponse, error) {
	g.lastValidate = req
	return g.validateResp, nil
}

func (g *fakeGateway) ListDevices(_ context.Context, _, _, _, _ string) (pingone.DevicesPage, error) {
	return g.devicesPage, nil
}

func (g *fakeGateway) ListPolicies(_ context.Context, _, _ string) ([]pingone.DeviceAuthenticationPolicy, error) {
	return g.policies, nil
}

type testEnv struct {
	router  *Router
	store   store.Store
	gateway *fakeGateway
	tokens  *service.WorkerTokenService
}

func newTestEnv(t *testing.T, fingerprints ...string) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := &fakeGateway{}

	tokens := service.NewWorkerTokenService(gw, logger, time.Minute)
	tokens.Refresh(context.Background())

	flags := &service.FeatureFlagService{Store: st}

	router := NewRouter("test", st, fingerprints, logger)
	router.FlowService = &service.FlowService{Store: st, Tokens: tokens, Flags: flags, FlowTTL: time.Hour}
	router.RegistrationService = &service.RegistrationService{Store: st, Client: gw, Tokens: tokens, PendingTTL: time.Hour}
	router.AuthService = &service.AuthenticationService{Store: st, Client: gw, Tokens: tokens, Region: "NA"}
	router.SyncService = &service.DeviceSyncService{Store: st, Client: gw, Tokens: tokens}
	router.PolicyService = service.NewPolicyService(gw, tokens, "env-1", time.Minute)
	router.TokenService = tokens
	router.FlagService = flags
	router.LogService = &service.DebugLogService{Store: st}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, gateway: gw, tokens: tokens}
}

// do performs a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func newRawRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(method, path, strings.NewReader(body)), httptest.NewRecorder()
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// createFlow opens a flow through the API and returns its response.
func (e *testEnv) createFlow(t *testing.T, req CreateFlowRequest) FlowResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/flows", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeJSON[FlowResponse](t, rec)
}
