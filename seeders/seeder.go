package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/pkg/config"
)

// SeedAdmin создаёт администратора, если его ещё нет. Вызывается и при старте сервера.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.AdminConfig, logger *zap.Logger) {
	log.Println("▶️  Проверка учётной записи администратора...")

	if err := seedAdminUser(ctx, db, cfg, logger); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Учётная запись администратора готова!")
}

// SeedDemoEquipment наполняет пустую таблицу equipments примерами записей.
func SeedDemoEquipment(ctx context.Context, db *pgxpool.Pool, cfg config.AdminConfig, logger *zap.Logger) {
	log.Println("▶️  Запуск наполнения демонстрационного оборудования...")

	if err := seedEquipments(ctx, db, cfg, logger); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	log.Println("✅ Наполнение оборудования завершено!")
}
