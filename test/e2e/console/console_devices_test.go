package console_test

import (
	"net/http"
	"testing"

	httpapi "github.com/pingdesk/pingdesk/internal/console/http"
	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

func TestDeviceSyncAndListing(t *testing.T) {
	env := setupConsole(t)
	env.gateway.devicePages = map[string]pingone.DevicesPage{
		"": {
			Devices: []pingone.Device{
				{ID: "d1", Type: "SMS", Status: "ACTIVE", Phone: "+1.5551234567"},
				{ID: "d2", Type: "EMAIL", Status: "ACTIVE", Email: "alice@example.com"},
			},
			Cursor: "page-2",
		},
		"page-2": {
			Devices: []pingone.Device{
				{ID: "d3", Type: "TOTP", Status: "ACTIVATION_REQUIRED"},
			},
		},
	}

	resp := env.do(t, http.MethodPost, "/v1/devices/sync", httpapi.SyncRequest{
		EnvironmentID: environmentID,
		Username:      username,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[service.SyncResult](t, resp)
	require.Equal(t, 3, result.Synced)
	require.Equal(t, 2, result.Pages)
	require.False(t, result.Cancelled)

	resp = env.do(t, http.MethodGet, "/v1/devices?environmentId="+environmentID+"&username="+username, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]httpapi.DeviceResponse](t, resp), 3)
}

func TestPolicyListIsCached(t *testing.T) {
	env := setupConsole(t)
	env.gateway.policies = []pingone.DeviceAuthenticationPolicy{
		{ID: "pol-1", Name: "Default MFA Policy", Default: true},
	}

	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodGet, "/v1/policies", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		policies := decode[[]pingone.DeviceAuthenticationPolicy](t, resp)
		require.Len(t, policies, 1)
		require.Equal(t, "pol-1", policies[0].ID)
	}

	require.Equal(t, 1, env.gateway.policyCallCount())
}
