// Package validation validates user-supplied action input before any
// provider call is dispatched
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"gamepanel/internal/constants"
	"gamepanel/internal/errors"
)

var (
	// serviceIDRegex validates provider service identifiers
	serviceIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

	// osIDRegex validates operating system image identifiers
	osIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
)

// ServiceID validates a provider service identifier
func ServiceID(id string) error {
	if id == "" {
		return errors.ValidationFailed("service_id", id, "cannot be empty")
	}

	if len(id) > 255 {
		return errors.ValidationFailed("service_id", id, "too long (max 255 characters)")
	}

	if !serviceIDRegex.MatchString(id) {
		return errors.ValidationFailed("service_id", id, "contains invalid characters")
	}

	return nil
}

// OSID validates an operating system image identifier for reinstallation
func OSID(id string) error {
	if id == "" {
		return errors.ValidationFailed("os_id", id, "cannot be empty")
	}

	if !osIDRegex.MatchString(id) {
		return errors.ValidationFailed("os_id", id, "contains invalid characters")
	}

	return nil
}

// ReinstallPassword validates the new root password for a reinstall. The
// password value itself is never included in the error.
func ReinstallPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.ValidationFailed("password", "", "cannot be empty")
	}

	if len(password) < constants.MinReinstallPasswordLength {
		return errors.ValidationFailed("password", "",
			fmt.Sprintf("too short (minimum %d characters)", constants.MinReinstallPasswordLength))
	}

	return nil
}

// UserID validates an owning user identifier
func UserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.ValidationFailed("user_id", id, "cannot be empty")
	}
	return nil
}

// NonEmptyString validates that a string is not empty or only whitespace
func NonEmptyString(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.ValidationFailed("string", s, "cannot be empty or only whitespace")
	}
	return nil
}
