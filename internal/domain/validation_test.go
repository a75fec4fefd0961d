package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"Valid username", "testuser", nil},
		{"Valid username with numbers", "user123", nil},
		{"Valid username with underscore", "test_user", nil},
		{"Valid username with dash", "test-user", nil},
		{"Valid minimum length", "abc", nil},
		{"Valid maximum length", "abcdefghijklmnopqrstuvwxyz123456", nil},
		{"Invalid - too short", "ab", ErrUsernameTooShort},
		{"Invalid - too long", "abcdefghijklmnopqrstuvwxyz1234567", ErrUsernameTooLong},
		{"Invalid - empty", "", ErrUsernameTooShort},
		{"Invalid - spaces", "test user", ErrInvalidUsername},
		{"Invalid - special characters", "test@user", ErrInvalidUsername},
		{"Invalid - starts with number", "123user", ErrInvalidUsername},
		{"Invalid - starts with dash", "-testuser", ErrInvalidUsername},
		{"Invalid - starts with underscore", "_testuser", ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password1"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
}

func TestValidateCommentBody(t *testing.T) {
	assert.NoError(t, ValidateCommentBody("looks good"))
	assert.ErrorIs(t, ValidateCommentBody(""), ErrEmptyCommentBody)
	assert.ErrorIs(t, ValidateCommentBody("   \n\t "), ErrEmptyCommentBody)
	assert.ErrorIs(t, ValidateCommentBody(strings.Repeat("a", MaxCommentLength+1)), ErrCommentTooLong)
}
