package controllers

import (
	"net/http"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/api"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type UserController struct {
	userService       services.UserServiceInterface
	credentialService services.CredentialServiceInterface
	logger            *zap.Logger
}

func NewUserController(
	userService services.UserServiceInterface,
	credentialService services.CredentialServiceInterface,
	logger *zap.Logger,
) *UserController {
	if logger == nil {
		logger = zap.New(zapcore.NewNopCore()) // безопасный пустой логгер
	}
	return &UserController{
		userService:       userService,
		credentialService: credentialService,
		logger:            logger,
	}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page := utils.ParsePaginationParams(ctx.QueryParams())
	res, total, err := c.userService.GetUsers(ctx.Request().Context(), caller, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список пользователей", res, total, page)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.FindUser(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Пользователь найден", res)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateUser: неверный формат запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.CreateUser(ctx.Request().Context(), caller, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Пользователь создан", res)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateUser: неверный формат запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(ctx.Request().Context(), caller, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Пользователь обновлён", res)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), caller, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пользователь удалён", http.StatusOK)
}

func (c *UserController) ResetPassword(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ResetPasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.credentialService.AdminReset(ctx.Request().Context(), caller, ctx.Param("id"), payload.NewPassword); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пароль сброшен, пользователь должен сменить его при следующем входе", http.StatusOK)
}
