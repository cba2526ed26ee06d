package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := NewDefaultPasswordPolicy()

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "Strong password", password: "Str0ngPass!1"},
		{name: "Too short", password: "Ab1!x", expectError: true},
		{name: "Entirely numeric", password: "1029384756", expectError: true},
		{name: "Common password", password: "password123", expectError: true},
		{name: "Common password different case", password: "PASSWORD123", expectError: true},
		{name: "Excessive length", password: strings.Repeat("a", 129), expectError: true},
		{name: "Minimum length accepted", password: "okpass1!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordPolicyIsPluggable(t *testing.T) {
	strict := &DefaultPasswordPolicy{MinLength: 20}
	assert.Error(t, strict.Validate("Str0ngPass!1"))
	assert.NoError(t, strict.Validate("Str0ngPass!1-and-longer"))
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
	}{
		{name: "Valid", username: "alice"},
		{name: "Valid with separators", username: "alice_b-1"},
		{name: "Too short", username: "al", expectError: true},
		{name: "Too long", username: strings.Repeat("a", 31), expectError: true},
		{name: "Invalid characters", username: "alice!", expectError: true},
		{name: "Leading underscore", username: "_alice", expectError: true},
		{name: "Trailing hyphen", username: "alice-", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@x.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}
