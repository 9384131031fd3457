package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/pingone"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// syncClient is the slice of the gateway client the device sync needs.
type syncClient interface {
	ListDevices(ctx context.Context, workerToken, environmentID, username, cursor string) (pingone.DevicesPage, error)
}

// SyncResult reports one sync run. Cancelled is a distinct outcome, not an
// error: a cancelled run leaves the previous mirror untouched.
type SyncResult struct {
	Synced    int  `json:"synced"`
	Pages     int  `json:"pages"`
	Cancelled bool `json:"cancelled"`
}

// DeviceSyncService mirrors a user's registered devices from the gateway
// into the local store, page by page. The caller cancels a long-running
// sync through the context.
type DeviceSyncService struct {
	Store  store.Store
	Client syncClient
	Tokens *WorkerTokenService
}

// Sync fetches all device pages for a user and replaces the local mirror.
// The mirror is only touched once every page has arrived, so a failed or
// cancelled run keeps the previous mirror intact.
func (s *DeviceSyncService) Sync(ctx context.Context, environmentID, username string) (SyncResult, error) {
	if !s.Tokens.Valid() {
		return SyncResult{}, ErrWorkerTokenInvalid
	}

	var result SyncResult
	var fetched []pingone.Device
	cursor := ""
	for {
		if ctx.Err() != nil {
			slogx.FromContext(ctx).Info("device sync cancelled",
				"username", username, "pages", result.Pages)
			return SyncResult{Pages: result.Pages, Cancelled: true}, nil
		}

		page, err := s.Client.ListDevices(ctx, s.Tokens.Token(), environmentID, username, cursor)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return SyncResult{Pages: result.Pages, Cancelled: true}, nil
			}
			return result, fmt.Errorf("failed to list devices: %w", err)
		}
		result.Pages++
		fetched = append(fetched, page.Devices...)

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	now := time.Now().UTC()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Devices().DeleteUserDevices(ctx, environmentID, username); err != nil {
			return fmt.Errorf("failed to clear device mirror: %w", err)
		}
		for _, d := range fetched {
			device := domain.Device{
				ID:            d.ID,
				EnvironmentID: environmentID,
				Username:      username,
				Type:          domain.DeviceType(d.Type),
				Status:        domain.DeviceStatus(d.Status),
				Nickname:      d.Nickname,
				Phone:         d.Phone,
				Email:         d.Email,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Devices().UpsertDevice(ctx, device); err != nil {
				return fmt.Errorf("failed to upsert device: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return SyncResult{Pages: result.Pages, Cancelled: true}, nil
		}
		return SyncResult{Pages: result.Pages}, err
	}
	result.Synced = len(fetched)

	slogx.FromContext(ctx).Info("device sync completed",
		"username", username, "synced", result.Synced, "pages", result.Pages)
	return result, nil
}

// ListDevices returns the local mirror for a user.
func (s *DeviceSyncService) ListDevices(ctx context.Context, environmentID, username string) ([]domain.Device, error) {
	devices, err := s.Store.Devices().ListUserDevices(ctx, environmentID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}
