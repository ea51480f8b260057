package services

import (
	"context"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const accountEntity = "пользователь"

// CredentialServiceInterface - жизненный цикл пароля: выдача временного, смена владельцем, сброс администратором.
type CredentialServiceInterface interface {
	IssueTemporary(ctx context.Context, account entities.User, tempPassword string) (*entities.User, error)
	SelfChange(ctx context.Context, caller authz.Caller, accountID, currentPassword, newPassword string) error
	AdminReset(ctx context.Context, caller authz.Caller, accountID, newPassword string) error
}

type CredentialService struct {
	userRepository repositories.UserRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
	now            func() time.Time
}

func NewCredentialService(
	userRepository repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *CredentialService {
	return &CredentialService{
		userRepository: userRepository,
		txManager:      txManager,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func validatePasswordLength(field, password string) error {
	if len(password) < constants.MinPasswordLength {
		return apperrors.NewValidationError(field, "пароль должен содержать не менее %d символов", constants.MinPasswordLength)
	}
	return nil
}

// IssueTemporary сохраняет учётную запись с хешем временного пароля. Новая запись всегда в состоянии MUST_CHANGE.
func (s *CredentialService) IssueTemporary(ctx context.Context, account entities.User, tempPassword string) (*entities.User, error) {
	if err := validatePasswordLength("temporary_password", tempPassword); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = hash
	account.PasswordState = entities.InitialPasswordState()

	created, err := s.userRepository.Create(ctx, nil, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Выдан временный пароль", zap.String("user_id", created.ID), zap.String("username", created.Username))
	return created, nil
}

// SelfChange меняет пароль владельцем учётной записи. Старый пароль после успеха больше не подходит.
func (s *CredentialService) SelfChange(ctx context.Context, caller authz.Caller, accountID, currentPassword, newPassword string) error {
	if err := authz.Require(caller, authz.PasswordChangeOwn); err != nil {
		return err
	}
	if caller.UserID != accountID {
		return apperrors.NewForbiddenError("сменить пароль может только владелец учётной записи")
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		account, err := s.userRepository.FindByID(ctx, tx, accountID)
		if err != nil {
			return notFoundOr(err, accountEntity, accountID)
		}

		if err := utils.ComparePasswords(account.PasswordHash, currentPassword); err != nil {
			s.logger.Warn("Неверный текущий пароль при смене", zap.String("user_id", accountID))
			return apperrors.NewAuthError("текущий пароль неверен")
		}
		if err := validatePasswordLength("new_password", newPassword); err != nil {
			return err
		}

		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return err
		}
		changedAt := s.now()
		if err := s.userRepository.UpdatePassword(ctx, tx, accountID, hash, account.PasswordState.AfterSelfChange(), &changedAt); err != nil {
			return notFoundOr(err, accountEntity, accountID)
		}

		s.logger.Info("Пароль изменён владельцем", zap.String("user_id", accountID))
		return nil
	})
}

// AdminReset задаёт новый пароль без знания текущего и снова требует его смены.
func (s *CredentialService) AdminReset(ctx context.Context, caller authz.Caller, accountID, newPassword string) error {
	if err := authz.Require(caller, authz.UsersResetPassword); err != nil {
		return err
	}
	if err := validatePasswordLength("new_password", newPassword); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		account, err := s.userRepository.FindByID(ctx, tx, accountID)
		if err != nil {
			return notFoundOr(err, accountEntity, accountID)
		}

		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return err
		}
		changedAt := s.now()
		if err := s.userRepository.UpdatePassword(ctx, tx, accountID, hash, account.PasswordState.AfterAdminReset(), &changedAt); err != nil {
			return notFoundOr(err, accountEntity, accountID)
		}

		s.logger.Info("Пароль сброшен администратором",
			zap.String("user_id", accountID),
			zap.String("admin", caller.Username),
		)
		return nil
	})
}
