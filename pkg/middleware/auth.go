package middleware

import (
	"context"
	"strings"

	"maintenance-system/internal/authz"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PasswordChangeRequiredReason - причина отказа, пока пользователь не сменил временный пароль.
const PasswordChangeRequiredReason = "password_change_required"

// CallerResolver восстанавливает актуальную идентичность по id из токена.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID string) (authz.Caller, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	resolver   CallerResolver
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, resolver CallerResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		resolver:   resolver,
		logger:     logger,
	}
}

// Auth - это основная функция middleware.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// 1. Извлекаем токен из заголовка
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		// 2. Проверяем формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		// 3. Валидируем токен
		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 4. Перечитываем пользователя: роль, активность и флаг смены пароля берутся из БД, а не из токена
		ctx := c.Request().Context()
		caller, err := m.resolver.ResolveCaller(ctx, claims.Subject)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Пользователь из токена недоступен", zap.String("userID", claims.Subject), zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithCaller(ctx, caller)))
		m.logger.Debug("AuthMiddleware: Пользователь успешно аутентифицирован", zap.String("userID", caller.UserID))

		return next(c)
	}
}

// RequirePasswordChanged пропускает пользователя в состоянии MUST_CHANGE только на перечисленные маршруты.
func (m *AuthMiddleware) RequirePasswordChanged(allowedPaths ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedPaths))
	for _, p := range allowedPaths {
		allowed[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := utils.GetCallerFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !caller.MustChangePassword {
				return next(c)
			}
			if _, ok := allowed[c.Path()]; ok {
				return next(c)
			}

			m.logger.Info("Доступ заблокирован до смены пароля",
				zap.String("userID", caller.UserID),
				zap.String("path", c.Path()),
			)
			return utils.ErrorResponse(c, apperrors.NewForbiddenError(PasswordChangeRequiredReason), m.logger)
		}
	}
}

// Authorize проверяет право на операцию до вызова контроллера.
func (m *AuthMiddleware) Authorize(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := utils.GetCallerFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if err := authz.Require(caller, op); err != nil {
				m.logger.Warn("Отказано в доступе",
					zap.String("userID", caller.UserID),
					zap.String("operation", string(op)),
				)
				return utils.ErrorResponse(c, err, m.logger)
			}
			return next(c)
		}
	}
}
