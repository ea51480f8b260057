package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func seedEquipments(ctx context.Context, db *pgxpool.Pool, cfg config.AdminConfig, logger *zap.Logger) error {
	log.Println("  - Наполнение таблицы 'equipments'...")

	equipmentRepo := repositories.NewEquipmentRepository(db)
	existing, err := equipmentRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("    - Таблица уже содержит записи. Пропускаем.")
		return nil
	}

	technician := cfg.FullName
	admin, err := repositories.NewUserRepository(db, logger).FindByUsername(ctx, cfg.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("ошибка поиска администратора: %w", err)
	}
	if admin != nil {
		technician = admin.FullName
	}

	return repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		for i, e := range equipmentsData {
			// разносим записи по времени, чтобы порядок created_at был однозначным
			stamp := now.Add(-time.Duration(len(equipmentsData)-i) * time.Minute)
			record := entities.Equipment{
				ID:                    uuid.NewString(),
				Area:                  e.Area,
				EquipmentType:         e.Type,
				DeviceName:            e.DeviceName,
				Brand:                 e.Brand,
				Model:                 e.Model,
				SerialNumber:          e.SerialNumber,
				MaintenanceType:       e.MaintenanceType,
				MaintenanceDate:       stamp,
				EquipmentStatus:       e.Status,
				Notes:                 e.Notes,
				ResponsibleTechnician: technician,
				CreatedBy:             cfg.Username,
				CreatedAt:             stamp,
			}
			if _, err := equipmentRepo.Create(ctx, tx, record); err != nil {
				return fmt.Errorf("ошибка при вставке оборудования '%s': %w", e.SerialNumber, err)
			}
		}
		return nil
	})
}
