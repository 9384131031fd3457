package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

// ValidationResult is the outcome of one field rule.
type ValidationResult struct {
	Valid   bool
	Error   string
	Warning string
}

// FieldRule validates a single form field value. Absent fields are
// validated as the empty string.
type FieldRule func(value string) ValidationResult

// CrossFieldRule validates a relationship between fields. It returns a map
// of field name to error message; an empty map means the rule passed.
type CrossFieldRule func(values map[string]string) map[string]string

// DeviceFlowConfig is the static per-device-type ruleset that drives the
// unified registration flow: which fields the form collects, how they are
// validated, and how the wizard steps are labelled.
type DeviceFlowConfig struct {
	DeviceType     domain.DeviceType
	DisplayName    string
	RequiredFields []string
	OptionalFields []string
	Rules          map[string]FieldRule
	CrossField     []CrossFieldRule

	// RequiresOTP marks device types whose activation step validates an OTP.
	RequiresOTP bool

	// StepLabels overrides the default wizard step labels per device type.
	StepLabels map[domain.Step]string
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitPattern = regexp.MustCompile(`\d`)
)

const (
	minPhoneDigits    = 7
	maxDeviceNameLen  = 100
	whatsAppBothEmpty = "Provide a phone number or an email address"
)

func phoneRule(value string) ValidationResult {
	if value == "" {
		return ValidationResult{Valid: true}
	}
	digits := countDigits(value)
	if digits < minPhoneDigits {
		return ValidationResult{Error: fmt.Sprintf("Phone Number must contain at least %d digits", minPhoneDigits)}
	}
	return ValidationResult{Valid: true}
}

func emailRule(value string) ValidationResult {
	if value == "" {
		return ValidationResult{Valid: true}
	}
	if !emailPattern.MatchString(value) {
		// Unusual addresses are accepted by the gateway, so advisory only.
		return ValidationResult{Valid: true, Warning: "Email address looks malformed"}
	}
	return ValidationResult{Valid: true}
}

func deviceNameRule(value string) ValidationResult {
	if len(value) > maxDeviceNameLen {
		return ValidationResult{Error: fmt.Sprintf("Device Name must be at most %d characters", maxDeviceNameLen)}
	}
	return ValidationResult{Valid: true}
}

// whatsAppContactRule requires at least one of phoneNumber/email. When both
// are empty, both fields carry the same error; filling either clears both.
func whatsAppContactRule(values map[string]string) map[string]string {
	phone := strings.TrimSpace(values["phoneNumber"])
	email := strings.TrimSpace(values["email"])
	if phone != "" || email != "" {
		return nil
	}
	return map[string]string{
		"phoneNumber": whatsAppBothEmpty,
		"email":       whatsAppBothEmpty,
	}
}

const (
	labelGenerateOTPQR = "Generate OTP/QR"
	labelPushToMobile  = "Push to Mobile App"
	labelStartFIDO     = "Start FIDO in Browser"
)

var deviceFlowConfigs = map[domain.DeviceType]DeviceFlowConfig{
	domain.DeviceSMS: {
		DeviceType:     domain.DeviceSMS,
		DisplayName:    "SMS",
		RequiredFields: []string{"phoneNumber", "countryCode"},
		OptionalFields: []string{"deviceName"},
		Rules: map[string]FieldRule{
			"phoneNumber": phoneRule,
			"deviceName":  deviceNameRule,
		},
		RequiresOTP: true,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelGenerateOTPQR,
		},
	},
	domain.DeviceEmail: {
		DeviceType:     domain.DeviceEmail,
		DisplayName:    "Email",
		RequiredFields: []string{"email"},
		OptionalFields: []string{"deviceName"},
		Rules: map[string]FieldRule{
			"email":      emailRule,
			"deviceName": deviceNameRule,
		},
		RequiresOTP: true,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelGenerateOTPQR,
		},
	},
	domain.DeviceTOTP: {
		DeviceType:     domain.DeviceTOTP,
		DisplayName:    "Authenticator App (TOTP)",
		RequiredFields: nil,
		OptionalFields: []string{"deviceName", "policyId"},
		Rules: map[string]FieldRule{
			"deviceName": deviceNameRule,
		},
		RequiresOTP: true,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelGenerateOTPQR,
		},
	},
	domain.DeviceFIDO2: {
		DeviceType:     domain.DeviceFIDO2,
		DisplayName:    "Security Key (FIDO2)",
		RequiredFields: nil,
		OptionalFields: []string{"deviceName", "credentialId", "publicKey"},
		Rules: map[string]FieldRule{
			"deviceName": deviceNameRule,
		},
		RequiresOTP: false,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelStartFIDO,
		},
	},
	domain.DeviceMobile: {
		DeviceType:     domain.DeviceMobile,
		DisplayName:    "Mobile Push",
		RequiredFields: nil,
		OptionalFields: []string{"deviceName"},
		Rules: map[string]FieldRule{
			"deviceName": deviceNameRule,
		},
		RequiresOTP: false,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelPushToMobile,
		},
	},
	domain.DeviceWhatsApp: {
		DeviceType:     domain.DeviceWhatsApp,
		DisplayName:    "WhatsApp",
		RequiredFields: nil,
		OptionalFields: []string{"phoneNumber", "countryCode", "email", "deviceName"},
		Rules: map[string]FieldRule{
			"phoneNumber": phoneRule,
			"email":       emailRule,
			"deviceName":  deviceNameRule,
		},
		CrossField:  []CrossFieldRule{whatsAppContactRule},
		RequiresOTP: true,
		StepLabels: map[domain.Step]string{
			domain.StepRegistration: labelGenerateOTPQR,
		},
	},
}

// GetDeviceConfig looks up the flow configuration for a device type. The
// second return is false for unknown types; callers must guard.
func GetDeviceConfig(t domain.DeviceType) (DeviceFlowConfig, bool) {
	cfg, ok := deviceFlowConfigs[t]
	return cfg, ok
}

// StepLabel returns the wizard label for a step, applying any per-device
// override.
func (c DeviceFlowConfig) StepLabel(s domain.Step) string {
	if label, ok := c.StepLabels[s]; ok {
		return label
	}
	return defaultStepLabels[s]
}

var defaultStepLabels = map[domain.Step]string{
	domain.StepConfigure:       "Configure",
	domain.StepUserLogin:       "User Login",
	domain.StepDeviceSelection: "Device Selection",
	domain.StepRegistration:    "Registration",
	domain.StepActivation:      "Activation",
	domain.StepSuccess:         "Success",
	domain.StepDocs:            "API Documentation",
}

func countDigits(s string) int {
	return len(digitPattern.FindAllString(s, -1))
}
