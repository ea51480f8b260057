package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, caller authz.Caller, page types.Page) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, caller authz.Caller, id string) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, caller authz.Caller, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, caller authz.Caller, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, caller authz.Caller, id string) error
}

type UserService struct {
	txManager         repositories.TxManagerInterface
	userRepository    repositories.UserRepositoryInterface
	credentialService CredentialServiceInterface
	logger            *zap.Logger
	now               func() time.Time
}

func NewUserService(
	txManager repositories.TxManagerInterface,
	userRepository repositories.UserRepositoryInterface,
	credentialService CredentialServiceInterface,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		txManager:         txManager,
		userRepository:    userRepository,
		credentialService: credentialService,
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func userEntityToDTO(u *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword(),
		LastLogin:          formatNullTime(u.LastLogin),
		PasswordChangedAt:  formatNullTime(u.PasswordChangedAt),
		CreatedAt:          formatTimestamp(u.CreatedAt),
	}
}

func (s *UserService) GetUsers(ctx context.Context, caller authz.Caller, page types.Page) ([]dto.UserDTO, uint64, error) {
	if err := authz.Require(caller, authz.UsersList); err != nil {
		return nil, 0, err
	}

	users, err := s.userRepository.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	pageItems := utils.Paginate(users, page)
	result := make([]dto.UserDTO, 0, len(pageItems))
	for i := range pageItems {
		result = append(result, userEntityToDTO(&pageItems[i]))
	}
	return result, uint64(len(users)), nil
}

func (s *UserService) FindUser(ctx context.Context, caller authz.Caller, id string) (*dto.UserDTO, error) {
	if err := authz.Require(caller, authz.UsersList); err != nil {
		return nil, err
	}
	user, err := s.userRepository.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, accountEntity, id)
	}
	result := userEntityToDTO(user)
	return &result, nil
}

func (s *UserService) CreateUser(ctx context.Context, caller authz.Caller, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if err := authz.Require(caller, authz.UsersCreate); err != nil {
		return nil, err
	}

	account := entities.User{
		ID:        uuid.NewString(),
		Username:  strings.TrimSpace(payload.Username),
		Email:     strings.TrimSpace(payload.Email),
		FullName:  strings.TrimSpace(payload.FullName),
		Role:      entities.Role(payload.Role),
		IsActive:  true,
		CreatedAt: s.now(),
	}
	if err := validateAccount(&account); err != nil {
		return nil, err
	}

	existing, err := s.userRepository.FindByUsername(ctx, account.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidationError("username", "имя пользователя '%s' уже используется", account.Username)
	}

	created, err := s.credentialService.IssueTemporary(ctx, account, payload.TemporaryPassword)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создан пользователь",
		zap.String("user_id", created.ID),
		zap.String("username", created.Username),
		zap.String("created_by", caller.Username),
	)
	result := userEntityToDTO(created)
	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, caller authz.Caller, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if err := authz.Require(caller, authz.UsersUpdate); err != nil {
		return nil, err
	}

	var updated *entities.User
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.userRepository.FindByID(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, accountEntity, id)
		}

		if payload.FullName != nil {
			current.FullName = strings.TrimSpace(*payload.FullName)
		}
		if payload.Email != nil {
			current.Email = strings.TrimSpace(*payload.Email)
		}
		if payload.Role != nil {
			current.Role = entities.Role(*payload.Role)
		}
		if payload.IsActive != nil {
			current.IsActive = *payload.IsActive
		}
		if err := validateAccount(current); err != nil {
			return err
		}

		updated, err = s.userRepository.Update(ctx, tx, *current)
		if err != nil {
			return notFoundOr(err, accountEntity, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь обновлён", zap.String("user_id", id), zap.String("updated_by", caller.Username))
	result := userEntityToDTO(updated)
	return &result, nil
}

// DeleteUser удаляет учётную запись. Удалить самого себя нельзя.
func (s *UserService) DeleteUser(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.Require(caller, authz.UsersDelete); err != nil {
		return err
	}
	if caller.UserID == id {
		return apperrors.NewForbiddenError("нельзя удалить собственную учётную запись")
	}

	if err := s.userRepository.Delete(ctx, nil, id); err != nil {
		return notFoundOr(err, accountEntity, id)
	}
	s.logger.Info("Пользователь удалён", zap.String("user_id", id), zap.String("deleted_by", caller.Username))
	return nil
}

func validateAccount(u *entities.User) error {
	if u.Username == "" {
		return apperrors.NewValidationError("username", "обязательное поле")
	}
	if u.FullName == "" {
		return apperrors.NewValidationError("full_name", "обязательное поле")
	}
	if u.Email == "" {
		return apperrors.NewValidationError("email", "обязательное поле")
	}
	if !u.Role.Valid() {
		return apperrors.NewValidationError("role", "неизвестная роль '%s'", u.Role)
	}
	return nil
}
