// Package validation holds input rules shared by services and the seeder.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"chirp/internal/models"
)

// ValidateHandle checks an account handle. Handles are opaque credentials, so
// only emptiness, whitespace and length are enforced.
func ValidateHandle(handle string) error {
	if handle == "" {
		return errors.New("handle is required")
	}
	if strings.IndexFunc(handle, unicode.IsSpace) >= 0 {
		return errors.New("handle cannot contain whitespace")
	}
	if utf8.RuneCountInString(handle) > models.MaxHandleLength {
		return fmt.Errorf("handle must be at most %d characters", models.MaxHandleLength)
	}
	return nil
}

// ValidateDisplayName checks an account's display name.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > models.MaxDisplayNameLength {
		return fmt.Errorf("name must be at most %d characters", models.MaxDisplayNameLength)
	}
	return nil
}

// ValidateContent checks post text.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return fmt.Errorf("content must be at most %d characters", models.MaxContentLength)
	}
	return nil
}

// ValidateLink checks a stored media link.
func ValidateLink(link string) error {
	if link == "" {
		return errors.New("link is required")
	}
	if utf8.RuneCountInString(link) > models.MaxLinkLength {
		return fmt.Errorf("link must be at most %d characters", models.MaxLinkLength)
	}
	return nil
}
