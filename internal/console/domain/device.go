package domain

import "time"

// DeviceType enumerates the six device types the console can register.
type DeviceType string

const (
	DeviceSMS      DeviceType = "SMS"
	DeviceEmail    DeviceType = "EMAIL"
	DeviceTOTP     DeviceType = "TOTP"
	DeviceFIDO2    DeviceType = "FIDO2"
	DeviceMobile   DeviceType = "MOBILE"
	DeviceWhatsApp DeviceType = "WHATSAPP"
)

// DeviceTypes lists every supported type in display order.
var DeviceTypes = []DeviceType{
	DeviceSMS, DeviceEmail, DeviceTOTP, DeviceFIDO2, DeviceMobile, DeviceWhatsApp,
}

// Valid reports whether t is one of the six supported device types.
func (t DeviceType) Valid() bool {
	switch t {
	case DeviceSMS, DeviceEmail, DeviceTOTP, DeviceFIDO2, DeviceMobile, DeviceWhatsApp:
		return true
	}
	return false
}

// DeviceStatus is the PingOne-reported lifecycle status of a device.
type DeviceStatus string

const (
	StatusActive             DeviceStatus = "ACTIVE"
	StatusActivationRequired DeviceStatus = "ACTIVATION_REQUIRED"
)

// Device is a row in the console's local device mirror, populated by sync.
type Device struct {
	ID            string
	EnvironmentID string
	Username      string
	Type          DeviceType
	Status        DeviceStatus
	Nickname      string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
