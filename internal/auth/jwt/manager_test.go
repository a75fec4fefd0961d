package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessExpiry time.Duration) *Manager {
	return NewManager("test-secret-key-32-chars-long-minimum", "test", accessExpiry, 7*24*time.Hour)
}

func TestManager_GenerateTokenPair(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "user", "session-1")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)
}

func TestManager_ValidateToken(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "admin", "session-1")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "session-1", claims.SessionToken)
}

func TestManager_ValidateToken_Invalid(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	_, err := manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ValidateToken_Expired(t *testing.T) {
	manager := newTestManager(1 * time.Millisecond)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "user", "session-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = manager.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_RefreshAccessToken_KeepsSessionToken(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "user", "session-1")
	require.NoError(t, err)

	accessToken, err := manager.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionToken)
}

func TestManager_RefreshAccessToken_Invalid(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	_, err := manager.RefreshAccessToken("invalid-refresh-token")
	assert.Error(t, err)
}

func TestManager_DifferentSecrets(t *testing.T) {
	manager1 := NewManager("secret-one-32-chars-long-padding-xx", "test", 15*time.Minute, time.Hour)
	manager2 := NewManager("secret-two-32-chars-long-padding-xx", "test", 15*time.Minute, time.Hour)

	pair, err := manager1.GenerateTokenPair("user-1", "alice", "user", "session-1")
	require.NoError(t, err)

	_, err = manager2.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ExtractUserID(t *testing.T) {
	manager := newTestManager(15 * time.Minute)

	pair, err := manager.GenerateTokenPair("user-1", "alice", "user", "session-1")
	require.NoError(t, err)

	userID, err := manager.ExtractUserID(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
