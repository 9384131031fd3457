package service

import (
	"regexp"
	"strings"
	"unicode"
)

// FieldValidation is the aggregate outcome of validating a form submission
// against a device flow configuration. Errors block submission; warnings
// are advisory and never block.
type FieldValidation struct {
	Valid    bool
	Errors   map[string]string
	Warnings map[string]string
}

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// ValidateRequiredFields checks that every required field is present and not
// whitespace-only. Error messages use the humanized field name.
func ValidateRequiredFields(cfg DeviceFlowConfig, values map[string]string) FieldValidation {
	errors := map[string]string{}
	for _, name := range cfg.RequiredFields {
		if strings.TrimSpace(values[name]) == "" {
			errors[name] = HumanizeFieldName(name) + " is required"
		}
	}
	return FieldValidation{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// RunValidationRules applies each field's declared rule. Fields without a
// rule are skipped; fields absent from values validate as "".
func RunValidationRules(cfg DeviceFlowConfig, values map[string]string) map[string]ValidationResult {
	results := make(map[string]ValidationResult, len(cfg.Rules))
	for name, rule := range cfg.Rules {
		results[name] = rule(values[name])
	}
	return results
}

// ValidateAllFields unions required-field checks, per-field rules and
// cross-field rules, separating blocking errors from advisory warnings.
func ValidateAllFields(cfg DeviceFlowConfig, values map[string]string) FieldValidation {
	required := ValidateRequiredFields(cfg, values)

	out := FieldValidation{
		Errors:   required.Errors,
		Warnings: map[string]string{},
	}

	for name, result := range RunValidationRules(cfg, values) {
		if _, exists := out.Errors[name]; exists {
			continue
		}
		if result.Error != "" {
			out.Errors[name] = result.Error
		}
		if result.Warning != "" {
			out.Warnings[name] = result.Warning
		}
	}

	for _, rule := range cfg.CrossField {
		for name, msg := range rule(values) {
			if _, exists := out.Errors[name]; !exists {
				out.Errors[name] = msg
			}
		}
	}

	out.Valid = len(out.Errors) == 0
	return out
}

// ValidateActivationOTP checks an activation code: exactly six digits.
// The error distinguishes wrong length from non-numeric input.
func ValidateActivationOTP(otp string) (bool, string) {
	if len(otp) != 6 {
		return false, "OTP must be 6 digits"
	}
	if !otpPattern.MatchString(otp) {
		return false, "OTP must contain only numbers"
	}
	return true, ""
}

// HumanizeFieldName converts a camelCase form field name to a display name,
// e.g. "phoneNumber" -> "Phone Number".
func HumanizeFieldName(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FullPhoneNumber joins a country code and a national number into the
// gateway's "+<cc>.<digits>" format, stripping formatting characters.
func FullPhoneNumber(countryCode, phone string) string {
	cc := strings.TrimSpace(countryCode)
	cc = strings.TrimPrefix(cc, "+")
	cc = keepDigits(cc)

	return "+" + cc + "." + keepDigits(phone)
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
