// Файл: seeders/admin_user_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, cfg config.AdminConfig, logger *zap.Logger) error {
	log.Printf("  - Создание пользователя '%s'...", cfg.Username)

	userRepo := repositories.NewUserRepository(db, logger)
	existing, err := userRepo.FindByUsername(ctx, cfg.Username)
	if err == nil && existing != nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	admin := entities.User{
		ID:        uuid.NewString(),
		Username:  cfg.Username,
		Email:     cfg.Email,
		FullName:  cfg.FullName,
		Role:      entities.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	// Пароль администратора тоже временный: при первом входе его нужно сменить.
	credentials := services.NewCredentialService(userRepo, repositories.NewTxManager(db), logger)
	created, err := credentials.IssueTemporary(ctx, admin, cfg.Password)
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	log.Printf("    - Администратор '%s' создан (id=%s).", created.Username, created.ID)
	return nil
}
