package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
)

var ErrFlagNotFound = errors.New("feature flag not found")

// FeatureFlagService gates which device types the console offers. Flags are
// persisted; a device type with no stored flag is enabled by default.
type FeatureFlagService struct {
	Store store.Store
}

// DeviceTypeEnabled reports whether a device type is offered.
func (s *FeatureFlagService) DeviceTypeEnabled(ctx context.Context, t domain.DeviceType) (bool, error) {
	flag, err := s.Store.FeatureFlags().GetFlag(ctx, domain.DeviceFlagKey(t))
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get flag: %w", err)
	}
	return flag.Enabled, nil
}

// EnabledDeviceTypes returns the device types currently offered, in display
// order.
func (s *FeatureFlagService) EnabledDeviceTypes(ctx context.Context) ([]domain.DeviceType, error) {
	var enabled []domain.DeviceType
	for _, t := range domain.DeviceTypes {
		ok, err := s.DeviceTypeEnabled(ctx, t)
		if err != nil {
			return nil, err
		}
		if ok {
			enabled = append(enabled, t)
		}
	}
	return enabled, nil
}

// GetFlag returns one flag by key.
func (s *FeatureFlagService) GetFlag(ctx context.Context, key string) (domain.FeatureFlag, error) {
	flag, err := s.Store.FeatureFlags().GetFlag(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return domain.FeatureFlag{}, ErrFlagNotFound
	}
	if err != nil {
		return domain.FeatureFlag{}, fmt.Errorf("failed to get flag: %w", err)
	}
	return flag, nil
}

// ListFlags returns all persisted flags.
func (s *FeatureFlagService) ListFlags(ctx context.Context) ([]domain.FeatureFlag, error) {
	flags, err := s.Store.FeatureFlags().ListFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	return flags, nil
}

// SetFlag creates or updates a flag.
func (s *FeatureFlagService) SetFlag(ctx context.Context, key string, enabled bool, description string) (domain.FeatureFlag, error) {
	flag := domain.FeatureFlag{
		Key:         key,
		Enabled:     enabled,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.Store.FeatureFlags().SetFlag(ctx, flag); err != nil {
		return domain.FeatureFlag{}, fmt.Errorf("failed to set flag: %w", err)
	}
	return flag, nil
}
