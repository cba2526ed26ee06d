// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// PasswordPolicy is a pluggable credential strength check. The default
// policy mirrors the usual framework stack: minimum length, not entirely
// numeric, not on a common-password list. Replace it to tighten or relax
// the ruleset without touching registration logic.
type PasswordPolicy interface {
	Validate(password string) error
}

// DefaultPasswordPolicy applies the standard three checks.
type DefaultPasswordPolicy struct {
	MinLength int
}

// NewDefaultPasswordPolicy returns the stock policy with an 8-character minimum.
func NewDefaultPasswordPolicy() *DefaultPasswordPolicy {
	return &DefaultPasswordPolicy{MinLength: 8}
}

// commonPasswords is a short excerpt of widely used leaked passwords. The
// comparison is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password12":  {},
	"password123": {},
	"123456":      {},
	"1234567":     {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"iloveyou":    {},
	"admin":       {},
	"welcome":     {},
	"welcome1":    {},
	"monkey":      {},
	"dragon":      {},
	"letmein":     {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"trustno1":    {},
	"superman":    {},
	"asdfghjkl":   {},
	"changeme":    {},
	"passw0rd":    {},
}

var numericOnly = regexp.MustCompile(`^[0-9]+$`)

// Validate checks the password against the policy.
func (p *DefaultPasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	if numericOnly.MatchString(password) {
		return fmt.Errorf("password cannot be entirely numeric")
	}

	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return fmt.Errorf("password is too common")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores, and hyphens
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidateBio bounds the free-text profile bio.
func ValidateBio(bio string) error {
	if len([]rune(bio)) > 500 {
		return fmt.Errorf("bio must not exceed 500 characters")
	}
	return nil
}
