package controllers

import (
	"fmt"
	"net/http"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/api"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		logger:           logger,
	}
}

// GetEquipments - список с фильтром из query-параметров.
func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.EquipmentFilterDTO
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверные параметры фильтра"), c.logger)
	}

	page := utils.ParsePaginationParams(ctx.QueryParams())
	res, total, err := c.equipmentService.ListEquipment(ctx.Request().Context(), caller, filter, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список оборудования успешно получен", res, total, page)
}

// FilterEquipments - тот же список, но фильтр приходит в теле запроса.
func (c *EquipmentController) FilterEquipments(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.EquipmentFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат фильтра"), c.logger)
	}

	page := utils.ParsePaginationParams(ctx.QueryParams())
	res, total, err := c.equipmentService.ListEquipment(ctx.Request().Context(), caller, filter, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Оборудование отфильтровано", res, total, page)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Оборудование успешно найдено", res)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateEquipment: неверный формат запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), caller, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Оборудование успешно создано", res)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateEquipment: неверный формат запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), caller, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Оборудование успешно обновлено", res)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), caller, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Оборудование успешно удалено", http.StatusOK)
}

// ExportExcel отдаёт отфильтрованные записи файлом reporte_mantenimiento.xlsx.
func (c *EquipmentController) ExportExcel(ctx echo.Context) error {
	caller, err := utils.GetCallerFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.EquipmentFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат фильтра"), c.logger)
	}

	content, err := c.equipmentService.ExportEquipment(ctx.Request().Context(), caller, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", constants.ExportFileName))
	return ctx.Blob(http.StatusOK, constants.ExportContentType, content)
}
