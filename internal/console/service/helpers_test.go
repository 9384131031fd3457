package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/internal/console/store/drivers/sqlite"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// staticTokenClient serves a canned token endpoint response.
type staticTokenClient struct {
	resp pingone.TokenResponse
	err  error
}

func (c *staticTokenClient) ClientCredentialsToken(_ context.Context) (pingone.TokenResponse, error) {
	return c.resp, c.err
}

// newValidTokenService returns a token service holding a worker token that
// stays valid for the whole test.
func newValidTokenService(t *testing.T) *WorkerTokenService {
	t.Helper()

	svc := NewWorkerTokenService(&staticTokenClient{
		resp: pingone.TokenResponse{AccessToken: "worker-token", ExpiresIn: 3600},
	}, newTestLogger(), time.Minute)
	svc.Refresh(context.Background())
	require.True(t, svc.Valid())
	return svc
}

// newInvalidTokenService returns a token service that never acquired a token.
func newInvalidTokenService() *WorkerTokenService {
	return NewWorkerTokenService(&staticTokenClient{
		resp: pingone.TokenResponse{AccessToken: "worker-token", ExpiresIn: 3600},
	}, newTestLogger(), time.Minute)
}

func createTestFlow(t *testing.T, st store.Store, tokens *WorkerTokenService, p CreateFlowParams) domain.FlowSession {
	t.Helper()

	flows := &FlowService{
		Store:   st,
		Tokens:  tokens,
		Flags:   &FeatureFlagService{Store: st},
		FlowTTL: time.Hour,
	}
	flow, err := flows.CreateFlow(context.Background(), p)
	require.NoError(t, err)
	return flow
}
