package validation

import (
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidID checks if an entity identifier is plausible: non-empty, no
// whitespace, bounded length
func (v *Validator) IsValidID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	return !strings.ContainsAny(id, " \t\n\r")
}

// IsValidMillis checks if a millisecond Unix timestamp is positive and not
// absurdly far in the future (one year of slack for client clock drift)
func (v *Validator) IsValidMillis(millis int64) bool {
	if millis <= 0 {
		return false
	}
	ceiling := time.Now().AddDate(1, 0, 0).UnixMilli()
	return millis <= ceiling
}

// IsValidTimezoneOffset checks if a timezone offset in milliseconds is
// within the UTC-12..UTC+14 envelope
func (v *Validator) IsValidTimezoneOffset(offsetMillis int64) bool {
	const hour = int64(3600000)
	return offsetMillis >= -14*hour && offsetMillis <= 14*hour
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}
