package colour

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest description a colour object may carry.
const MaxDescriptionLength = 255

var (
	nameRegex      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	hexStringRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{3}|[A-Fa-f0-9]{4}|[A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)
	hexDigitsRegex = regexp.MustCompile(`^([A-Fa-f0-9]{3}|[A-Fa-f0-9]{4}|[A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)
)

// ValidateInterval checks that v lies within the closed interval [lo, hi].
func ValidateInterval(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s (%v) is outside of interval range [%v, %v]", ErrNumericInterval, name, v, lo, hi)
	}
	return nil
}

// ValidateFraction checks that v lies within [0, 1].
func ValidateFraction(name string, v float64) error {
	return ValidateInterval(name, v, 0, 1)
}

// ValidateHue checks that v lies within [0, 360].
func ValidateHue(v float64) error {
	return ValidateInterval("hue", v, 0, 360)
}

// ValidateByte checks that v lies within [0, 255].
func ValidateByte(name string, v int) error {
	return ValidateInterval(name, float64(v), 0, 255)
}

// ValidateHexString checks for a '#' followed by 3, 4, 6 or 8 hex digits.
func ValidateHexString(s string) error {
	if s == "" {
		return fmt.Errorf("%w: can not use empty strings", ErrInvalidValue)
	}
	if !hexStringRegex.MatchString(s) {
		return fmt.Errorf("%w: invalid hex_code: %s", ErrInvalidValue, s)
	}
	return nil
}

// ValidateName checks an object name. The empty string means "no name" and is accepted.
func ValidateName(s string) error {
	if s == "" {
		return nil
	}
	if !nameRegex.MatchString(s) {
		return fmt.Errorf("%w: invalid name: %s", ErrInvalidValue, s)
	}
	return nil
}

// ValidateDescription checks that a description is no longer than MaxDescriptionLength.
func ValidateDescription(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return fmt.Errorf("%w: description should not be more than %d characters", ErrInvalidValue, MaxDescriptionLength)
	}
	return nil
}
