package domain

import "time"

// FlowType selects the registration mode for a flow session.
type FlowType string

const (
	// FlowAdminActive registers a device that is immediately usable.
	FlowAdminActive FlowType = "admin-active"
	// FlowAdminActivationRequired registers a device the user must activate.
	FlowAdminActivationRequired FlowType = "admin-activation-required"
	// FlowUser registers a device on behalf of a logged-in end user.
	FlowUser FlowType = "user"
)

// Valid reports whether t is one of the three supported flow types.
func (t FlowType) Valid() bool {
	switch t {
	case FlowAdminActive, FlowAdminActivationRequired, FlowUser:
		return true
	}
	return false
}

// TokenType identifies which kind of access token a flow presents upstream.
type TokenType string

const (
	TokenWorker TokenType = "worker"
	TokenUser   TokenType = "user"
)

// MFACredentials is the mutable session state for an active flow: who is
// being enrolled, where, and with what contact details.
type MFACredentials struct {
	EnvironmentID                string
	Username                     string
	DeviceType                   DeviceType
	TokenType                    TokenType
	UserToken                    string
	DeviceAuthenticationPolicyID string

	// Per-device contact fields collected by the form
	PhoneNumber string
	CountryCode string
	Email       string
	DeviceName  string
}

// MFAState holds runtime results from the PingOne gateway. DeviceStatus is
// only meaningful after a successful registration call.
type MFAState struct {
	DeviceID     string
	DeviceStatus DeviceStatus
	DeviceAuthID string

	// TOTP
	TOTPSecret string
	KeyURI     string
	ShowQR     bool

	// Mobile
	PairingKey string

	// FIDO2
	CredentialID    string
	PublicKey       string
	CreationOptions string // raw publicKeyCredentialCreationOptions JSON
}

// FlowSession is one run of the unified registration flow. It survives
// console restarts; expired sessions are pruned by housekeeping.
type FlowSession struct {
	ID          string
	FlowType    FlowType
	Credentials MFACredentials
	State       MFAState
	Navigation  StepNavigationState
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ExpiresAt   time.Time
}

// PendingRegistration is a user-flow submission parked until a user token
// becomes available.
type PendingRegistration struct {
	ID         string
	FlowID     string
	DeviceType DeviceType
	FlowType   FlowType
	Fields     map[string]string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}
