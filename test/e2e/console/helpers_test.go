package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	httpapi "github.com/pingdesk/pingdesk/internal/console/http"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/internal/console/store/drivers/sqlite"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for console service end-to-end tests. The console is wired
 * exactly as in production, with the real PingOne client pointed at an
 * in-process fake gateway, and is driven over real HTTP.
 */

const (
	environmentID = "env-1"
	username      = "alice"
	workerToken   = "worker-token"
)

// fakePingOne stands in for the PingOne MFA gateway and token endpoint.
// Responses are configured per test; requests the gateway saw are recorded
// so tests can assert on the wire contract.
type fakePingOne struct {
	srv *httptest.Server

	mu sync.Mutex

	registerResp pingone.RegisterDeviceResponse
	// registerStatus, when non-zero, makes registration fail with
	// registerBody as the response.
	registerStatus   int
	registerBody     string
	lastRegister     pingone.RegisterDeviceRequest
	lastRegisterAuth string
	registerCalls    int

	initResp pingone.InitAuthenticationResponse

	validateStatus string
	lastValidate   pingone.ValidateOTPRequest

	devicePages map[string]pingone.DevicesPage

	policies    []pingone.DeviceAuthenticationPolicy
	policyCalls int
	tokenCalls  int
}

func newFakePingOne(t *testing.T) *fakePingOne {
	t.Helper()

	f := &fakePingOne{
		initResp:       pingone.InitAuthenticationResponse{Status: pingone.AuthStatusOTPRequired, DeviceAuthID: "auth-1"},
		validateStatus: pingone.AuthStatusCompleted,
		devicePages:    map[string]pingone.DevicesPage{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{env}/as/token", f.handleToken)
	mux.HandleFunc("POST /api/pingone/mfa/register-device", f.handleRegister)
	mux.HandleFunc("POST /api/pingone/mfa/device-authentication-init", f.handleInit)
	mux.HandleFunc("POST /api/pingone/mfa/validate-otp-for-device", f.handleValidate)
	mux.HandleFunc("GET /api/pingone/mfa/devices", f.handleDevices)
	mux.HandleFunc("GET /api/pingone/mfa/device-authentication-policies", f.handlePolicies)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePingOne) handleToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokenCalls++
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, pingone.TokenResponse{
		AccessToken: workerToken,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})
}

func (f *fakePingOne) handleRegister(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = json.NewDecoder(r.Body).Decode(&f.lastRegister)
	f.lastRegisterAuth = r.Header.Get("Authorization")
	f.registerCalls++

	if f.registerStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.registerStatus)
		_, _ = w.Write([]byte(f.registerBody))
		return
	}
	writeJSON(w, http.StatusOK, f.registerResp)
}

func (f *fakePingOne) handleInit(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	resp := f.initResp
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (f *fakePingOne) handleValidate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	_ = json.NewDecoder(r.Body).Decode(&f.lastValidate)
	status := f.validateStatus
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, pingone.ValidateOTPResponse{Status: status})
}

func (f *fakePingOne) handleDevices(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	page := f.devicePages[r.URL.Query().Get("cursor")]
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, page)
}

func (f *fakePingOne) handlePolicies(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.policyCalls++
	policies := f.policies
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"policies": policies})
}

func (f *fakePingOne) registerCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerCalls
}

func (f *fakePingOne) lastRegisterRequest() (pingone.RegisterDeviceRequest, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRegister, f.lastRegisterAuth
}

func (f *fakePingOne) lastValidateRequest() pingone.ValidateOTPRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastValidate
}

func (f *fakePingOne) policyCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.policyCalls
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// consoleEnv is one running console instance bound to its own fake gateway.
type consoleEnv struct {
	baseURL string
	gateway *fakePingOne
	httpc   *http.Client
}

// setupConsole boots the console with production wiring against a fake
// gateway and returns a client-facing handle.
func setupConsole(t *testing.T) *consoleEnv {
	t.Helper()

	gateway := newFakePingOne(t)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := pingone.NewClient(pingone.ClientConfig{
		APIBaseURL:    gateway.srv.URL,
		AuthBaseURL:   gateway.srv.URL,
		EnvironmentID: environmentID,
		ClientID:      "worker-client",
		ClientSecret:  "worker-secret",
		Region:        "NA",
	})

	tokens := service.NewWorkerTokenService(client, logger, time.Minute)
	tokens.Refresh(context.Background())
	require.True(t, tokens.Valid(), "worker token should be acquired at startup")

	flags := &service.FeatureFlagService{Store: st}

	router := httpapi.NewRouter("e2e", st, nil, logger)
	router.FlowService = &service.FlowService{Store: st, Tokens: tokens, Flags: flags, FlowTTL: time.Hour}
	router.RegistrationService = &service.RegistrationService{Store: st, Client: client, Tokens: tokens, PendingTTL: time.Hour}
	router.AuthService = &service.AuthenticationService{Store: st, Client: client, Tokens: tokens, Region: "NA"}
	router.SyncService = &service.DeviceSyncService{Store: st, Client: client, Tokens: tokens}
	router.PolicyService = service.NewPolicyService(client, tokens, environmentID, time.Minute)
	router.TokenService = tokens
	router.FlagService = flags
	router.LogService = &service.DebugLogService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &consoleEnv{baseURL: srv.URL, gateway: gateway, httpc: srv.Client()}
}

// do performs a JSON request against the console and returns the response.
// The caller owns the body.
func (e *consoleEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.httpc.Do(req)
	require.NoError(t, err)
	return resp
}

// decode drains and closes the response body, decoding it into T.
func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// drain discards and closes a response body the test does not inspect.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (e *consoleEnv) createFlow(t *testing.T, req httpapi.CreateFlowRequest) httpapi.FlowResponse {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/v1/flows", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[httpapi.FlowResponse](t, resp)
}

func smsFlowRequest() httpapi.CreateFlowRequest {
	return httpapi.CreateFlowRequest{
		FlowType:      "admin-active",
		DeviceType:    "SMS",
		EnvironmentID: environmentID,
		Username:      username,
		Fields: map[string]string{
			"phoneNumber": "555-123-4567",
			"countryCode": "+1",
		},
	}
}
