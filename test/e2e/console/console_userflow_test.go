package console_test

import (
	"net/http"
	"testing"

	httpapi "github.com/pingdesk/pingdesk/internal/console/http"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

func TestUserFlowParkAndResume(t *testing.T) {
	env := setupConsole(t)
	env.gateway.registerResp = pingone.RegisterDeviceResponse{DeviceID: "dev-3", Status: "ACTIVATION_REQUIRED"}

	req := httpapi.CreateFlowRequest{
		FlowType:      "user",
		DeviceType:    "SMS",
		EnvironmentID: environmentID,
		Username:      username,
		Fields: map[string]string{
			"phoneNumber": "512-520-1234",
			"countryCode": "+1",
		},
	}
	flow := env.createFlow(t, req)
	require.Equal(t, "user", flow.TokenType)

	t.Run("registration parks without a user token", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/register", httpapi.RegisterRequest{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, decode[httpapi.RegisterResponse](t, resp).LoginRequired)
		require.Zero(t, env.gateway.registerCallCount())
	})

	t.Run("resume replays the parked submission", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/resume", httpapi.ResumeRequest{UserToken: "user-access-token"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[httpapi.RegisterResponse](t, resp)
		require.False(t, body.LoginRequired)
		require.Equal(t, "dev-3", body.Flow.DeviceID)
		require.Equal(t, 4, body.Flow.CurrentStep)
		require.Equal(t, 1, env.gateway.registerCallCount())

		sent, _ := env.gateway.lastRegisterRequest()
		require.Equal(t, "user", sent.TokenType)
		require.Equal(t, "user-access-token", sent.UserToken)
		require.Equal(t, "+1.5125201234", sent.Phone)
	})

	t.Run("a second resume has nothing to replay", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/flows/"+flow.ID+"/resume", httpapi.ResumeRequest{UserToken: "user-access-token"})
		defer drain(resp)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
