package pingone

import "encoding/json"

// RegisterDeviceRequest is the device registration payload sent to the
// gateway. Field names match the gateway contract, not the console's form
// field names; the registration service performs the mapping.
type RegisterDeviceRequest struct {
	EnvironmentID string `json:"environmentId"`
	Username      string `json:"username"`
	Type          string `json:"type"`
	TokenType     string `json:"tokenType"`
	Status        string `json:"status,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Policy        string `json:"policy,omitempty"`
	CredentialID  string `json:"credentialId,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	UserToken     string `json:"userToken,omitempty"`
}

// RegisterDeviceResponse is the gateway's registration result. Device-type
// specific fields are only present for the matching type.
type RegisterDeviceResponse struct {
	DeviceID string `json:"deviceId"`
	Status   string `json:"status"`

	// TOTP
	Secret string `json:"secret,omitempty"`
	KeyURI string `json:"keyUri,omitempty"`
	QRCode string `json:"qrCode,omitempty"`

	// SMS/Email/WhatsApp
	DeviceActivateURI string `json:"deviceActivateUri,omitempty"`

	// Mobile
	PairingKey string `json:"pairingKey,omitempty"`

	// FIDO2
	PublicKeyCredentialCreationOptions json.RawMessage `json:"publicKeyCredentialCreationOptions,omitempty"`
}

// Authentication statuses normalized across the gateway's status/nextStep
// values.
const (
	AuthStatusOTPRequired              = "OTP_REQUIRED"
	AuthStatusAssertionRequired        = "ASSERTION_REQUIRED"
	AuthStatusPushConfirmationRequired = "PUSH_CONFIRMATION_REQUIRED"
	AuthStatusCompleted                = "COMPLETED"
	AuthStatusDeviceSelectionRequired  = "DEVICE_SELECTION_REQUIRED"
)

// InitAuthenticationRequest starts a device authentication test run.
type InitAuthenticationRequest struct {
	EnvironmentID                string `json:"environmentId"`
	Username                     string `json:"username"`
	DeviceAuthenticationPolicyID string `json:"deviceAuthenticationPolicyId"`
	DeviceID                     string `json:"deviceId,omitempty"`
	Region                       string `json:"region"`
	UserToken                    string `json:"userToken,omitempty"`
}

// InitAuthenticationResponse is the normalized authentication state. Some
// gateway versions report the state in `status`, others in `nextStep`;
// Status always carries the normalized value after decoding.
type InitAuthenticationResponse struct {
	Status       string `json:"status"`
	NextStep     string `json:"nextStep,omitempty"`
	DeviceAuthID string `json:"deviceAuthId"`
}

// ValidateOTPRequest validates an activation or authentication OTP.
type ValidateOTPRequest struct {
	EnvironmentID string `json:"environmentId"`
	Username      string `json:"username"`
	DeviceAuthID  string `json:"deviceAuthId"`
	OTP           string `json:"otp"`
	Region        string `json:"region"`
	WorkerToken   string `json:"workerToken"`
}

// ValidateOTPResponse reports the post-validation status.
type ValidateOTPResponse struct {
	Status string `json:"status"`
}

// Device is a registered MFA device as reported by the gateway.
type Device struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Nickname string `json:"nickname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DevicesPage is one page of a device listing. Cursor is opaque; an empty
// cursor on the response means the listing is complete.
type DevicesPage struct {
	Devices []Device `json:"devices"`
	Cursor  string   `json:"cursor,omitempty"`
}

// DeviceAuthenticationPolicy is a PingOne-side policy governing which device
// types are permitted and how authentication proceeds.
type DeviceAuthenticationPolicy struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// TokenResponse is the token endpoint response for the client credentials
// grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
