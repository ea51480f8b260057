package main

import (
	"context"
	"flag"
	"log"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/pkg/logger"
	"maintenance-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	// --- Определяем флаги ---
	runAdmin := flag.Bool("admin", false, "Создать администратора, если его нет")
	runEquipment := flag.Bool("equipment", false, "Наполнить пустую таблицу оборудования примерами")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -equipment)")

	flag.Parse()

	// Если ни один флаг не указан - показываем справку
	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	appLogger := logger.NewLogger(cfg.Log)
	defer appLogger.Sync()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, appLogger)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(ctx, dbPool, cfg.Admin, appLogger)
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedDemoEquipment(ctx, dbPool, cfg.Admin, appLogger)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
