package utils

import (
	"regexp"
	"strings"
)

const (
	MaxDisplayNameLength = 100
	MaxTitleLength       = 200
	MaxBodyLength        = 5000
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail does a cheap structural check; deliverability is the mail
// layer's problem.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && len(email) <= 255 && emailRegex.MatchString(email)
}

// ValidateDisplayName rejects empty and oversized display names.
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "display_name", Message: "Display name is required"}
	}
	if len(name) > MaxDisplayNameLength {
		return &ValidationError{Field: "display_name", Message: "Display name is too long"}
	}
	return nil
}

// ValidateRequiredText checks a required free-text field against a cap.
func ValidateRequiredText(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if len(value) > max {
		return &ValidationError{Field: field, Message: field + " is too long"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
