package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage/memory"
)

func newTestService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store), store
}

func TestService_Register(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(RegisterInput{
		Username: "testuser",
		Password: "Password123!",
		Email:    "Test@Example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Password123!", user.PasswordHash)
}

func TestService_Register_InvalidUsername(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(RegisterInput{Username: "1bad", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.Register(RegisterInput{Username: "ab", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestService_Register_WeakPassword(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(RegisterInput{Username: "testuser", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestService_Login(t *testing.T) {
	service, _ := newTestService()

	registered, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	session, err := service.Login(LoginInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	assert.Equal(t, registered.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)

	// 最后登录时间已记录
	user, err := service.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestService_Login_NewSessionTokenPerLogin(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	first, err := service.Login(LoginInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)
	second, err := service.Login(LoginInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	_, err = service.Login(LoginInput{Username: "testuser", Password: "WrongPassword123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Username: "nonexistent", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveUser(t *testing.T) {
	service, store := newTestService()

	user, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, store.UpdateUser(user))

	_, err = service.Login(LoginInput{Username: "testuser", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestService_GetUserByID_NotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.GetUserByID("non-existent-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ChangePassword(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	err = service.ChangePassword(user.ID, "Password123!", "NewPassword123!")
	require.NoError(t, err)

	_, err = service.Login(LoginInput{Username: "testuser", Password: "NewPassword123!"})
	assert.NoError(t, err)

	_, err = service.Login(LoginInput{Username: "testuser", Password: "Password123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ChangePassword_WrongOldPassword(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(RegisterInput{Username: "testuser", Password: "Password123!"})
	require.NoError(t, err)

	err = service.ChangePassword(user.ID, "WrongPassword123!", "NewPassword123!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid old password")
}
