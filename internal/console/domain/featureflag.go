package domain

import "time"

// FeatureFlag is a persisted console feature toggle. Device-type flags use
// the "device:<TYPE>" key convention and default to enabled when absent.
type FeatureFlag struct {
	Key         string
	Enabled     bool
	Description string
	UpdatedAt   time.Time
}

// DeviceFlagKey returns the feature flag key gating a device type.
func DeviceFlagKey(t DeviceType) string {
	return "device:" + string(t)
}
