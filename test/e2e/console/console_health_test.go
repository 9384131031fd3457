package console_test

import (
	"net/http"
	"testing"

	httpapi "github.com/pingdesk/pingdesk/internal/console/http"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	env := setupConsole(t)

	resp := env.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	live := decode[httpapi.HealthResponse](t, resp)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "e2e", live.Version)

	resp = env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ready := decode[httpapi.HealthResponse](t, resp)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.WorkerToken)
}

func TestTokenStatusEndpoint(t *testing.T) {
	env := setupConsole(t)

	resp := env.do(t, http.MethodGet, "/v1/token/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decode[service.TokenStatus](t, resp).Valid)
}

func TestActivationRateLimit(t *testing.T) {
	env := setupConsole(t)
	flow := env.createFlow(t, smsFlowRequest())

	// The strict profile allows a burst of 5 per flow; the malformed OTP
	// keeps every attempt away from the gateway.
	for i := 0; i < 5; i++ {
		resp := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/activate", httpapi.ActivateRequest{OTP: "12ab"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		drain(resp)
	}

	resp := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/activate", httpapi.ActivateRequest{OTP: "12ab"})
	defer drain(resp)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Other flows are unaffected by the exhausted bucket.
	other := env.createFlow(t, smsFlowRequest())
	resp2 := env.do(t, http.MethodPost, "/v1/flows/"+other.ID+"/activate", httpapi.ActivateRequest{OTP: "12ab"})
	defer drain(resp2)
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
