package workout

import (
	"errors"
	"regexp"
)

// MinCredentialLength is the minimum length of a username or a password.
const MinCredentialLength = 5

var (
	ErrInvalidDuration = errors.New("invalid workout duration")
	ErrInvalidDistance = errors.New("invalid workout distance")

	ErrCredentialTooShort     = errors.New("credential too short")
	ErrCredentialNotLowercase = errors.New("credential must contain only lowercase letters")
)

var (
	durationRegex   = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d):([0-5]\d)$`)
	distanceRegex   = regexp.MustCompile(`^\d{2}\.\d{2}$`)
	credentialRegex = regexp.MustCompile(`^[a-z]*$`)
)

// ValidateDuration accepts HH:MM:SS with hours 00-23 and minutes/seconds 00-59.
func ValidateDuration(duration string) error {
	if !durationRegex.MatchString(duration) {
		return ErrInvalidDuration
	}
	return nil
}

// ValidateDistance accepts exactly two digits, a dot and two digits (kilometres).
func ValidateDistance(distance string) error {
	if !distanceRegex.MatchString(distance) {
		return ErrInvalidDistance
	}
	return nil
}

// ValidateCredential checks the rules shared by usernames and passwords.
func ValidateCredential(value string) error {
	if len(value) < MinCredentialLength {
		return ErrCredentialTooShort
	}
	if !credentialRegex.MatchString(value) {
		return ErrCredentialNotLowercase
	}
	return nil
}
