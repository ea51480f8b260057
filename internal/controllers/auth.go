package controllers

import (
	"net/http"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/api"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService       services.AuthServiceInterface
	credentialService services.CredentialServiceInterface
	jwtService        service.JWTService
	logger            *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	credentialService services.CredentialServiceInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:       authService,
		credentialService: credentialService,
		jwtService:        jwtService,
		logger:            logger,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	accessToken, err := c.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		c.logger.Error("Login: не удалось сгенерировать токен", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	userDTO, err := c.authService.Me(ctx.Request().Context(), authz.CallerFromUser(user))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	response := dto.AuthResponseDTO{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(c.jwtService.GetAccessTokenTTL().Seconds()),
		User:        *userDTO,
	}
	return api.SuccessOne(ctx, http.StatusOK, "Авторизация прошла успешно", response)
}

func (c *AuthController) Me(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	me, err := c.authService.Me(ctx.Request().Context(), caller)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Профиль пользователя", me)
}

// ChangePassword - смена пароля владельцем; единственная операция, доступная в состоянии MUST_CHANGE кроме /me.
func (c *AuthController) ChangePassword(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	err = c.credentialService.SelfChange(ctx.Request().Context(), caller, caller.UserID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пароль успешно изменён", http.StatusOK)
}
