// Файл: internal/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	ResolveCaller(ctx context.Context, userID string) (authz.Caller, error)
	Me(ctx context.Context, caller authz.Caller) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
	now       func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login проверяет имя и пароль. Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	username := strings.TrimSpace(payload.Username)
	logger := s.logger.With(zap.String("username", username))

	if err := s.checkLockout(ctx, username); err != nil {
		logger.Warn("Попытка входа в заблокированную учётную запись")
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.handleFailedLoginAttempt(ctx, username)
			return nil, apperrors.NewAuthError(apperrors.ErrInvalidCredentials.Error())
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, username)
		logger.Warn("Неверный пароль")
		return nil, apperrors.NewAuthError(apperrors.ErrInvalidCredentials.Error())
	}
	if !user.IsActive {
		logger.Warn("Вход в отключённую учётную запись")
		return nil, apperrors.NewAuthError("учётная запись отключена")
	}

	s.resetLoginAttempts(ctx, username)

	loginAt := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, err
	}
	user.LastLogin.SetValid(loginAt)

	logger.Info("Успешный вход", zap.Bool("must_change_password", user.MustChangePassword()))
	return user, nil
}

// ResolveCaller перечитывает учётную запись на каждый запрос: роль, активность и состояние пароля всегда актуальны.
func (s *AuthService) ResolveCaller(ctx context.Context, userID string) (authz.Caller, error) {
	user, err := s.userRepo.FindByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return authz.Caller{}, apperrors.NewAuthError("пользователь не найден")
		}
		return authz.Caller{}, err
	}
	if !user.IsActive {
		return authz.Caller{}, apperrors.NewAuthError("учётная запись отключена")
	}
	return authz.CallerFromUser(user), nil
}

func (s *AuthService) Me(ctx context.Context, caller authz.Caller) (*dto.UserDTO, error) {
	if err := authz.Require(caller, authz.ProfileView); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, nil, caller.UserID)
	if err != nil {
		return nil, notFoundOr(err, accountEntity, caller.UserID)
	}
	result := userEntityToDTO(user)
	return &result, nil
}

func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	lockoutKey := fmt.Sprintf("lockout:%s", username)

	// Если ключ существует - аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", username)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось задать срок жизни счётчика попыток входа", zap.String("username", username), zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%s", username)
		if err := s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration); err != nil {
			// счётчик не сбрасываем: следующая неудачная попытка снова попробует заблокировать
			s.logger.Warn("Не удалось заблокировать учётную запись", zap.String("username", username), zap.Error(err))
			return
		}
		if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
			s.logger.Warn("Не удалось сбросить счётчик попыток входа", zap.String("username", username), zap.Error(err))
		}
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", username)
	lockoutKey := fmt.Sprintf("lockout:%s", username)
	if err := s.cacheRepo.Del(ctx, attemptsKey, lockoutKey); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик попыток входа", zap.String("username", username), zap.Error(err))
	}
}
