package service

import (
	"testing"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/stretchr/testify/require"
)

func TestResolveFlowType(t *testing.T) {
	t.Parallel()

	t.Run("admin-active requests ACTIVE", func(t *testing.T) {
		res, err := ResolveFlowType(domain.FlowAdminActive)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, res.TargetStatus)
		require.Equal(t, domain.TokenWorker, res.TokenType)
	})

	t.Run("admin-activation-required requests ACTIVATION_REQUIRED", func(t *testing.T) {
		res, err := ResolveFlowType(domain.FlowAdminActivationRequired)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActivationRequired, res.TargetStatus)
		require.Equal(t, domain.TokenWorker, res.TokenType)
	})

	t.Run("user flow always requests ACTIVATION_REQUIRED", func(t *testing.T) {
		res, err := ResolveFlowType(domain.FlowUser)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActivationRequired, res.TargetStatus)
		require.Equal(t, domain.TokenUser, res.TokenType)
	})

	t.Run("unknown flow type errors", func(t *testing.T) {
		_, err := ResolveFlowType(domain.FlowType("self-service"))
		require.ErrorIs(t, err, ErrUnknownFlowType)
	})
}

func TestCheckTokenRequirement(t *testing.T) {
	t.Parallel()

	worker := FlowResolution{TokenType: domain.TokenWorker}
	user := FlowResolution{TokenType: domain.TokenUser}

	t.Run("admin flow needs a valid worker token", func(t *testing.T) {
		require.NoError(t, CheckTokenRequirement(worker, true, ""))
		require.ErrorIs(t, CheckTokenRequirement(worker, false, ""), ErrWorkerTokenInvalid)
	})

	t.Run("user flow needs a user token, never downgrades", func(t *testing.T) {
		require.NoError(t, CheckTokenRequirement(user, false, "user-access-token"))

		// A valid worker token does not substitute for a missing user token.
		require.ErrorIs(t, CheckTokenRequirement(user, true, ""), ErrUserTokenRequired)
	})
}

func TestFIDO2Complete(t *testing.T) {
	t.Parallel()

	require.False(t, FIDO2Complete(domain.MFAState{}))
	require.False(t, FIDO2Complete(domain.MFAState{CredentialID: "cred"}))
	require.False(t, FIDO2Complete(domain.MFAState{PublicKey: "pk"}))
	require.True(t, FIDO2Complete(domain.MFAState{CredentialID: "cred", PublicKey: "pk"}))
}
