package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/stretchr/testify/require"
)

// pagedDeviceClient serves device pages keyed by cursor.
type pagedDeviceClient struct {
	pages map[string]pingone.DevicesPage
	err   error
	calls int
}

func (c *pagedDeviceClient) ListDevices(_ context.Context, _, _, _, cursor string) (pingone.DevicesPage, error) {
	c.calls++
	if c.err != nil {
		return pingone.DevicesPage{}, c.err
	}
	return c.pages[cursor], nil
}

func TestDeviceSync(t *testing.T) {
	ctx := context.Background()

	t.Run("walks all pages and replaces the mirror", func(t *testing.T) {
		st := newTestStore(t)

		// A stale row from an earlier sync that the gateway no longer reports.
		require.NoError(t, st.Devices().UpsertDevice(ctx, domain.Device{
			ID:            "stale",
			EnvironmentID: "env-1",
			Username:      "alice",
			Type:          domain.DeviceSMS,
			Status:        domain.StatusActive,
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		}))

		client := &pagedDeviceClient{pages: map[string]pingone.DevicesPage{
			"": {
				Devices: []pingone.Device{
					{ID: "d1", Type: "SMS", Status: "ACTIVE", Phone: "+1.5551234567"},
					{ID: "d2", Type: "EMAIL", Status: "ACTIVATION_REQUIRED", Email: "alice@example.com"},
				},
				Cursor: "page-2",
			},
			"page-2": {
				Devices: []pingone.Device{
					{ID: "d3", Type: "TOTP", Status: "ACTIVE"},
				},
			},
		}}

		svc := &DeviceSyncService{Store: st, Client: client, Tokens: newValidTokenService(t)}

		result, err := svc.Sync(ctx, "env-1", "alice")
		require.NoError(t, err)
		require.False(t, result.Cancelled)
		require.Equal(t, 3, result.Synced)
		require.Equal(t, 2, result.Pages)

		devices, err := svc.ListDevices(ctx, "env-1", "alice")
		require.NoError(t, err)
		require.Len(t, devices, 3)
		for _, d := range devices {
			require.NotEqual(t, "stale", d.ID)
		}
	})

	t.Run("a failed fetch keeps the previous mirror", func(t *testing.T) {
		st := newTestStore(t)

		require.NoError(t, st.Devices().UpsertDevice(ctx, domain.Device{
			ID:            "kept",
			EnvironmentID: "env-1",
			Username:      "alice",
			Type:          domain.DeviceSMS,
			Status:        domain.StatusActive,
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		}))

		client := &pagedDeviceClient{err: errors.New("gateway unavailable")}
		svc := &DeviceSyncService{Store: st, Client: client, Tokens: newValidTokenService(t)}

		_, err := svc.Sync(ctx, "env-1", "alice")
		require.Error(t, err)

		devices, err := svc.ListDevices(ctx, "env-1", "alice")
		require.NoError(t, err)
		require.Len(t, devices, 1)
		require.Equal(t, "kept", devices[0].ID)
	})

	t.Run("cancellation is an outcome, not an error", func(t *testing.T) {
		st := newTestStore(t)
		client := &pagedDeviceClient{pages: map[string]pingone.DevicesPage{}}
		svc := &DeviceSyncService{Store: st, Client: client, Tokens: newValidTokenService(t)}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := svc.Sync(cancelled, "env-1", "alice")
		require.NoError(t, err)
		require.True(t, result.Cancelled)
		require.Zero(t, result.Synced)
	})

	t.Run("client-reported cancellation is an outcome too", func(t *testing.T) {
		st := newTestStore(t)
		client := &pagedDeviceClient{err: context.Canceled}
		svc := &DeviceSyncService{Store: st, Client: client, Tokens: newValidTokenService(t)}

		result, err := svc.Sync(ctx, "env-1", "alice")
		require.NoError(t, err)
		require.True(t, result.Cancelled)
	})

	t.Run("requires a valid worker token", func(t *testing.T) {
		st := newTestStore(t)
		client := &pagedDeviceClient{}
		svc := &DeviceSyncService{Store: st, Client: client, Tokens: newInvalidTokenService()}

		_, err := svc.Sync(ctx, "env-1", "alice")
		require.ErrorIs(t, err, ErrWorkerTokenInvalid)
		require.Zero(t, client.calls)
	})
}
