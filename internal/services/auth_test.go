package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newAuthServiceForTest(users ...entities.User) (AuthServiceInterface, *fakeUserRepository, *fakeCacheRepository) {
	repo := newFakeUserRepository(users...)
	cache := newFakeCacheRepository()
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}
	return NewAuthService(repo, cache, testLogger(), cfg), repo, cache
}

func TestAuthService_LoginStampsLastLogin(t *testing.T) {
	account := accountWithPassword(t, "u-1", "jperez", entities.RoleUser, "temp123", entities.PasswordStateMustChange)
	svc, repo, _ := newAuthServiceForTest(account)

	user, err := svc.Login(context.Background(), dto.LoginDTO{Username: "jperez", Password: "temp123"})
	require.NoError(t, err)
	assert.True(t, user.MustChangePassword())
	assert.True(t, user.LastLogin.Valid)

	stored, _ := repo.get(account.ID)
	assert.True(t, stored.LastLogin.Valid)
}

func TestAuthService_LoginFailures(t *testing.T) {
	active := accountWithPassword(t, "u-1", "jperez", entities.RoleUser, "temp123", entities.PasswordStateNormal)
	inactive := accountWithPassword(t, "u-2", "baja", entities.RoleUser, "temp123", entities.PasswordStateNormal)
	inactive.IsActive = false
	svc, repo, _ := newAuthServiceForTest(active, inactive)

	testCases := []struct {
		name    string
		payload dto.LoginDTO
	}{
		{"unknown user", dto.LoginDTO{Username: "ghost", Password: "temp123"}},
		{"wrong password", dto.LoginDTO{Username: "jperez", Password: "wrong"}},
		{"inactive account", dto.LoginDTO{Username: "baja", Password: "temp123"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.payload)
			var authErr *apperrors.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.False(t, authErr.Forbidden)
		})
	}

	stored, _ := repo.get(inactive.ID)
	assert.False(t, stored.LastLogin.Valid)
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	account := accountWithPassword(t, "u-1", "jperez", entities.RoleUser, "temp123", entities.PasswordStateNormal)
	svc, _, cache := newAuthServiceForTest(account)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Username: "jperez", Password: "wrong"})
		require.Error(t, err)
	}

	_, err := svc.Login(ctx, dto.LoginDTO{Username: "jperez", Password: "temp123"})
	assert.True(t, errors.Is(err, apperrors.ErrAccountLocked))
	assert.Equal(t, 15*time.Minute, cache.ttl["lockout:jperez"])

	// после снятия блокировки вход снова возможен и счётчик обнуляется
	require.NoError(t, cache.Del(ctx, "lockout:jperez"))
	_, err = svc.Login(ctx, dto.LoginDTO{Username: "jperez", Password: "temp123"})
	require.NoError(t, err)
	_, err = cache.Get(ctx, "login_attempts:jperez")
	assert.Error(t, err)
}

func TestAuthService_ResolveCaller(t *testing.T) {
	active := accountWithPassword(t, "u-1", "jperez", entities.RoleAdmin, "temp123", entities.PasswordStateMustChange)
	inactive := accountWithPassword(t, "u-2", "baja", entities.RoleUser, "temp123", entities.PasswordStateNormal)
	inactive.IsActive = false
	svc, _, _ := newAuthServiceForTest(active, inactive)

	caller, err := svc.ResolveCaller(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.Caller{
		UserID:             active.ID,
		Username:           active.Username,
		FullName:           active.FullName,
		Role:               entities.RoleAdmin,
		MustChangePassword: true,
	}, caller)

	var authErr *apperrors.AuthError
	_, err = svc.ResolveCaller(context.Background(), inactive.ID)
	require.ErrorAs(t, err, &authErr)
	_, err = svc.ResolveCaller(context.Background(), "missing")
	require.ErrorAs(t, err, &authErr)
}

func TestAuthService_Me(t *testing.T) {
	account := accountWithPassword(t, "u-1", "jperez", entities.RoleUser, "temp123", entities.PasswordStateMustChange)
	svc, _, _ := newAuthServiceForTest(account)

	me, err := svc.Me(context.Background(), authz.CallerFromUser(&account))
	require.NoError(t, err)
	assert.Equal(t, "jperez", me.Username)
	assert.True(t, me.MustChangePassword)

	_, err = svc.Me(context.Background(), authz.Caller{})
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestAuthService_LockoutFailureIsLogged(t *testing.T) {
	account := accountWithPassword(t, "u-1", "jperez", entities.RoleUser, "temp123", entities.PasswordStateNormal)
	repo := newFakeUserRepository(account)
	cache := newFakeCacheRepository()
	cache.setErr = errors.New("redis недоступен")
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}
	svc := NewAuthService(repo, cache, zap.New(core), cfg)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "jperez", Password: "wrong"})
		require.Error(t, err)
	}

	assert.Equal(t, 1, logs.FilterMessage("Не удалось заблокировать учётную запись").Len())
	// счётчик сохранён, чтобы следующая попытка снова попробовала заблокировать
	assert.Equal(t, "3", cache.values["login_attempts:jperez"])

	cache.setErr = nil
	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "jperez", Password: "wrong"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginDTO{Username: "jperez", Password: "temp123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}
