package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	userTableRepo             = "users"
	userSelectFieldsForEntity = "id, username, email, full_name, role, is_active, must_change_password, password_hash, last_login, password_changed_at, created_at"
)

type UserRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.User, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	Create(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error)
	Update(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error)
	UpdatePassword(ctx context.Context, tx pgx.Tx, id, passwordHash string, state entities.PasswordState, changedAt *time.Time) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	psql    sq.StatementBuilderType
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{
		storage: storage,
		logger:  logger,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var mustChange bool
	var lastLogin, passwordChangedAt *time.Time

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role, &user.IsActive,
		&mustChange, &user.PasswordHash, &lastLogin, &passwordChangedAt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	user.PasswordState = entities.PasswordStateFromFlag(mustChange)
	user.LastLogin = null.TimeFromPtr(lastLogin)
	user.PasswordChangedAt = null.TimeFromPtr(passwordChangedAt)
	return &user, nil
}

// uniqueViolation переводит нарушение уникальности в ошибку валидации по полю.
func uniqueViolation(err error) error {
	code, constraint := pgErrorCode(err)
	if code != pgUniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(constraint, "users_username_key"):
		return apperrors.NewValidationError("username", "имя пользователя уже используется")
	case strings.Contains(constraint, "users_email_key"):
		return apperrors.NewValidationError("email", "email уже используется")
	}
	return apperrors.NewValidationError("id", "запись уже существует")
}

func (r *UserRepository) GetAll(ctx context.Context) ([]entities.User, error) {
	query, args, err := r.psql.Select(userSelectFieldsForEntity).
		From(userTableRepo).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса пользователей: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по пользователям: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.User, error) {
	builder := r.psql.Select(userSelectFieldsForEntity).From(userTableRepo).Where(sq.Eq{"id": id})
	if tx != nil {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса пользователя: %w", err)
	}
	return scanUser(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := r.psql.Select(userSelectFieldsForEntity).
		From(userTableRepo).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса пользователя: %w", err)
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	query, args, err := r.psql.Insert(userTableRepo).
		Columns("id", "username", "email", "full_name", "role", "is_active",
			"must_change_password", "password_hash", "created_at").
		Values(user.ID, user.Username, user.Email, user.FullName, string(user.Role), user.IsActive,
			user.PasswordState.RequiresChange(), user.PasswordHash, user.CreatedAt).
		Suffix("RETURNING " + userSelectFieldsForEntity).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса создания пользователя: %w", err)
	}

	created, err := scanUser(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if uErr := uniqueViolation(err); uErr != nil {
			return nil, uErr
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return created, nil
}

// Update меняет профиль, роль и активность. Пароль меняется только через UpdatePassword.
func (r *UserRepository) Update(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	query, args, err := r.psql.Update(userTableRepo).
		SetMap(map[string]interface{}{
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      string(user.Role),
			"is_active": user.IsActive,
		}).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + userSelectFieldsForEntity).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса обновления пользователя: %w", err)
	}

	updated, err := scanUser(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if uErr := uniqueViolation(err); uErr != nil {
			return nil, uErr
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, tx pgx.Tx, id, passwordHash string, state entities.PasswordState, changedAt *time.Time) error {
	query, args, err := r.psql.Update(userTableRepo).
		Set("password_hash", passwordHash).
		Set("must_change_password", state.RequiresChange()).
		Set("password_changed_at", sq.Expr("COALESCE(?, password_changed_at)", changedAt)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса смены пароля: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка смены пароля: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := r.psql.Update(userTableRepo).
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса last_login: %w", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		r.logger.Warn("не удалось обновить last_login", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления last_login: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := r.psql.Delete(userTableRepo).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса удаления пользователя: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
