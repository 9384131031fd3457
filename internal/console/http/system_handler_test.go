package http

import (
	"net/http"
	"testing"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/cryptox"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

func TestDeviceEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.devicesPage = pingone.DevicesPage{Devices: []pingone.Device{
		{ID: "d1", Type: "SMS", Status: "ACTIVE", Phone: "+1.5551234567"},
		{ID: "d2", Type: "EMAIL", Status: "ACTIVATION_REQUIRED", Email: "alice@example.com"},
	}}

	t.Run("list requires query parameters", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/devices", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sync then list", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/devices/sync", SyncRequest{EnvironmentID: "env-1", Username: "alice"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		result := decodeJSON[service.SyncResult](t, rec)
		require.Equal(t, 2, result.Synced)
		require.False(t, result.Cancelled)

		rec = env.do(t, http.MethodGet, "/v1/devices?environmentId=env-1&username=alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decodeJSON[[]DeviceResponse](t, rec), 2)
	})
}

func TestDeviceTypesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/devicetypes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeJSON[[]DeviceTypeResponse](t, rec), 6)

	// Disabling a device type removes it from the offer.
	rec = env.do(t, http.MethodPut, "/v1/flags/device:WHATSAPP", FlagRequest{Enabled: false, Description: "rollout paused"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/devicetypes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	types := decodeJSON[[]DeviceTypeResponse](t, rec)
	require.Len(t, types, 5)
	for _, dt := range types {
		require.NotEqual(t, "WHATSAPP", dt.DeviceType)
	}
}

func TestFlagEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/flags/device:SMS", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/flags/device:SMS", FlagRequest{Enabled: false, Description: "carrier outage"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/flags/device:SMS", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	flag := decodeJSON[FlagResponse](t, rec)
	require.False(t, flag.Enabled)
	require.Equal(t, "carrier outage", flag.Description)

	rec = env.do(t, http.MethodGet, "/v1/flags", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeJSON[[]FlagResponse](t, rec), 1)
}

func TestLogsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.registerResp = pingone.RegisterDeviceResponse{DeviceID: "dev-1", Status: "ACTIVE"}

	flow := env.createFlow(t, smsCreateRequest())
	rec := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/register", RegisterRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/logs?flowId="+flow.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := decodeJSON[[]LogEntryResponse](t, rec)
	require.NotEmpty(t, entries)
	require.Equal(t, flow.ID, entries[0].FlowID)

	rec = env.do(t, http.MethodGet, "/v1/logs?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/token/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeJSON[service.TokenStatus](t, rec).Valid)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeJSON[HealthResponse](t, rec).Status)

	rec = env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[HealthResponse](t, rec)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "ok", body.Checks.Database)
	require.Equal(t, "ok", body.Checks.WorkerToken)
}

func TestAPIKeyAuth(t *testing.T) {
	key := "operator-key"
	env := newTestEnv(t, cryptox.FingerprintToken(key))

	t.Run("rejects missing and wrong keys", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/devicetypes", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = env.do(t, http.MethodGet, "/v1/devicetypes", nil, "Authorization", "Bearer wrong-key")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts the configured key", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/devicetypes", nil, "Authorization", "Bearer "+key)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health probes stay open", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/livez", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
