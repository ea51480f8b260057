package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	User      *zap.Logger
}

// Пути, доступные пользователю до смены временного пароля.
const (
	mePath             = "/api/me"
	changePasswordPath = "/api/change-password"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Main)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, loggers.Auth, &cfg.Auth)
	credentialService := services.NewCredentialService(userRepo, txManager, loggers.Auth)
	userService := services.NewUserService(txManager, userRepo, credentialService, loggers.User)
	equipmentService := services.NewEquipmentService(equipmentRepo, txManager, loggers.Equipment)
	dashboardService := services.NewDashboardService(dashboardRepo, loggers.Main)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, credentialService, jwtSvc, loggers.Auth)
	userCtrl := controllers.NewUserController(userService, credentialService, loggers.User)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, loggers.Equipment)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, loggers.Main)

	// --- 4. РОУТЕРЫ ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, authService, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth, authMW.RequirePasswordChanged(mePath, changePasswordPath))

	runAuthRouter(api, secureGroup, authCtrl)
	runEquipmentRouter(secureGroup, equipmentCtrl, authMW)
	runReportRouter(secureGroup, equipmentCtrl, dashboardCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
