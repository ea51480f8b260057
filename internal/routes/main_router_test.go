// Файл: internal/routes/main_router_test.go
package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/customvalidator"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MaintenanceTestSuite прогоняет полный сценарий через HTTP на живых Postgres и Redis.
// Запускается только если заданы TEST_DATABASE_URL и TEST_REDIS_ADDRESS.
type MaintenanceTestSuite struct {
	suite.Suite
	Echo  *echo.Echo
	DB    *pgxpool.Pool
	Redis *redis.Client

	adminUsername string
	adminPassword string
	adminToken    string
	adminID       string

	userUsername string
	userToken    string
	userID       string
	equipmentID  string
}

func (suite *MaintenanceTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	redisAddr := os.Getenv("TEST_REDIS_ADDRESS")
	if dsn == "" || redisAddr == "" {
		suite.T().Skip("TEST_DATABASE_URL / TEST_REDIS_ADDRESS не заданы, интеграционные тесты пропущены")
	}

	ctx := context.Background()
	nopLogger := zap.NewNop()

	dbConn, err := postgresql.ConnectDB(ctx, dsn, nopLogger)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), postgresql.Migrate(ctx, dbConn))

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr, DB: 1})
	require.NoError(suite.T(), redisClient.Ping(ctx).Err())

	e := echo.New()
	v := validator.New()
	require.NoError(suite.T(), customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	cfg := &config.Config{
		JWT:  config.JWTConfig{SecretKey: "integration-secret", AccessTokenTTL: time.Hour},
		Auth: config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: time.Minute},
	}
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, nopLogger)

	InitRouter(e, dbConn, redisClient, jwtSvc, &Loggers{
		Main:      nopLogger,
		Auth:      nopLogger,
		Equipment: nopLogger,
		User:      nopLogger,
	}, cfg)

	suite.Echo = e
	suite.DB = dbConn
	suite.Redis = redisClient

	// Свой администратор на каждый прогон, чтобы не зависеть от состояния базы.
	suite.adminUsername = "it_admin_" + uuid.NewString()[:8]
	suite.adminPassword = "temporal1"
	userRepo := repositories.NewUserRepository(dbConn, nopLogger)
	credentials := services.NewCredentialService(userRepo, repositories.NewTxManager(dbConn), nopLogger)
	admin, err := credentials.IssueTemporary(ctx, entities.User{
		ID:        uuid.NewString(),
		Username:  suite.adminUsername,
		Email:     suite.adminUsername + "@example.com",
		FullName:  "Administrador de Pruebas",
		Role:      entities.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, suite.adminPassword)
	require.NoError(suite.T(), err)
	suite.adminID = admin.ID
}

func (suite *MaintenanceTestSuite) TearDownSuite() {
	if suite.DB == nil {
		return
	}
	ctx := context.Background()
	if suite.equipmentID != "" {
		_, _ = suite.DB.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, suite.equipmentID)
	}
	_, _ = suite.DB.Exec(ctx, `DELETE FROM users WHERE id = ANY($1)`, []string{suite.adminID, suite.userID})
	suite.DB.Close()
	suite.Redis.Close()
}

func (suite *MaintenanceTestSuite) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		require.NoError(suite.T(), json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, req)
	return rec
}

func (suite *MaintenanceTestSuite) login(username, password string) string {
	rec := suite.do(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	body := decodeBody(suite.T(), rec)
	token, _ := body["access_token"].(string)
	require.NotEmpty(suite.T(), token)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	body, _ := response["body"].(map[string]interface{})
	return body
}

func (suite *MaintenanceTestSuite) TestFullMaintenanceWorkflow() {
	suite.Run("1_AdminMustChangeTemporaryPassword", func() {
		suite.adminToken = suite.login(suite.adminUsername, suite.adminPassword)

		rec := suite.do(http.MethodGet, "/api/equipment", suite.adminToken, nil)
		assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "password_change_required")

		rec = suite.do(http.MethodGet, "/api/me", suite.adminToken, nil)
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Equal(suite.T(), true, decodeBody(suite.T(), rec)["must_change_password"])

		rec = suite.do(http.MethodPost, "/api/change-password", suite.adminToken, map[string]string{
			"current_password": suite.adminPassword,
			"new_password":     "definitiva1",
		})
		require.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

		rec = suite.do(http.MethodGet, "/api/equipment", suite.adminToken, nil)
		assert.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	})

	suite.Run("2_AdminCreatesUser", func() {
		suite.userUsername = "it_user_" + uuid.NewString()[:8]
		rec := suite.do(http.MethodPost, "/api/admin/users", suite.adminToken, map[string]string{
			"username":           suite.userUsername,
			"email":              suite.userUsername + "@example.com",
			"full_name":          "Juan Pérez",
			"role":               "user",
			"temporary_password": "temporal2",
		})
		require.Equal(suite.T(), http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())
		body := decodeBody(suite.T(), rec)
		suite.userID, _ = body["id"].(string)
		assert.Equal(suite.T(), true, body["must_change_password"])

		suite.userToken = suite.login(suite.userUsername, "temporal2")
		rec = suite.do(http.MethodPost, "/api/change-password", suite.userToken, map[string]string{
			"current_password": "temporal2",
			"new_password":     "propia123",
		})
		require.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	})

	suite.Run("3_UserCreatesEquipment", func() {
		rec := suite.do(http.MethodPost, "/api/equipment", suite.userToken, map[string]string{
			"area":             "Sistemas",
			"equipment_type":   "monitor",
			"device_name":      "NO-DEBE-QUEDAR",
			"brand":            "Samsung",
			"model":            "S24F350",
			"serial_number":    "IT-" + uuid.NewString()[:8],
			"maintenance_type": "cleaning",
		})
		require.Equal(suite.T(), http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())
		body := decodeBody(suite.T(), rec)
		suite.equipmentID, _ = body["id"].(string)
		assert.Equal(suite.T(), "Juan Pérez", body["responsible_technician"])
		assert.Equal(suite.T(), "operational", body["equipment_status"])
		assert.Nil(suite.T(), body["device_name"])

		rec = suite.do(http.MethodPost, "/api/equipment/filter", suite.userToken, map[string]string{
			"search": body["serial_number"].(string),
		})
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		list, _ := decodeBody(suite.T(), rec)["list"].([]interface{})
		assert.Len(suite.T(), list, 1)
	})

	suite.Run("4_OnlyAdminUpdatesAndDeletes", func() {
		path := "/api/equipment/" + suite.equipmentID
		patch := map[string]string{"equipment_status": "under_repair"}

		rec := suite.do(http.MethodPut, path, suite.userToken, patch)
		assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

		rec = suite.do(http.MethodPut, path, suite.adminToken, patch)
		require.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
		body := decodeBody(suite.T(), rec)
		assert.Equal(suite.T(), "under_repair", body["equipment_status"])
		assert.Equal(suite.T(), "Juan Pérez", body["responsible_technician"])
		assert.Equal(suite.T(), suite.adminUsername, body["updated_by"])

		rec = suite.do(http.MethodDelete, path, suite.userToken, nil)
		assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	})

	suite.Run("5_ExportReturnsWorkbook", func() {
		rec := suite.do(http.MethodPost, "/api/export/excel", suite.userToken, map[string]string{"area": "Sistemas"})
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Equal(suite.T(), constants.ExportContentType, rec.Header().Get(echo.HeaderContentType))
		assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), constants.ExportFileName)
		assert.NotZero(suite.T(), rec.Body.Len())
	})

	suite.Run("6_AdminResetForcesChangeAgain", func() {
		rec := suite.do(http.MethodPost, fmt.Sprintf("/api/admin/users/%s/reset-password", suite.userID), suite.adminToken,
			map[string]string{"new_password": "reseteada1"})
		require.Equal(suite.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

		rec = suite.do(http.MethodGet, "/api/equipment", suite.userToken, nil)
		assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "password_change_required")
	})

	suite.Run("7_DeleteEquipmentAndAccounts", func() {
		path := "/api/equipment/" + suite.equipmentID
		rec := suite.do(http.MethodDelete, path, suite.adminToken, nil)
		require.Equal(suite.T(), http.StatusOK, rec.Code)

		rec = suite.do(http.MethodGet, path, suite.adminToken, nil)
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
		suite.equipmentID = ""

		rec = suite.do(http.MethodDelete, "/api/admin/users/"+suite.adminID, suite.adminToken, nil)
		assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

		rec = suite.do(http.MethodDelete, "/api/admin/users/"+suite.userID, suite.adminToken, nil)
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
	})
}

func TestMaintenanceSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceTestSuite))
}
