package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const equipmentEntity = "оборудование"

type EquipmentServiceInterface interface {
	ListEquipment(ctx context.Context, caller authz.Caller, filter dto.EquipmentFilterDTO, page types.Page) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, caller authz.Caller, id string) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, caller authz.Caller, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, caller authz.Caller, id string, patch dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, caller authz.Caller, id string) error
	ExportEquipment(ctx context.Context, caller authz.Caller, filter dto.EquipmentFilterDTO) ([]byte, error)
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	txManager           repositories.TxManagerInterface
	logger              *zap.Logger
	now                 func() time.Time
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		txManager:           txManager,
		logger:              logger,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// filtered читает все записи и применяет фильтр; порядок - новые первыми.
func (s *EquipmentService) filtered(ctx context.Context, raw dto.EquipmentFilterDTO) ([]entities.Equipment, error) {
	filter, err := ParseEquipmentFilter(raw)
	if err != nil {
		return nil, err
	}
	records, err := s.equipmentRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterEquipment(records, filter), nil
}

func (s *EquipmentService) ListEquipment(ctx context.Context, caller authz.Caller, filter dto.EquipmentFilterDTO, page types.Page) ([]dto.EquipmentDTO, uint64, error) {
	if err := authz.Require(caller, authz.EquipmentList); err != nil {
		return nil, 0, err
	}

	records, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pageItems := utils.Paginate(records, page)
	result := make([]dto.EquipmentDTO, 0, len(pageItems))
	for i := range pageItems {
		result = append(result, equipmentEntityToDTO(&pageItems[i]))
	}
	return result, uint64(len(records)), nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, caller authz.Caller, id string) (*dto.EquipmentDTO, error) {
	if err := authz.Require(caller, authz.EquipmentList); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepository.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, equipmentEntity, id)
	}
	result := equipmentEntityToDTO(equipment)
	return &result, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, caller authz.Caller, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := authz.Require(caller, authz.EquipmentCreate); err != nil {
		return nil, err
	}

	now := s.now()
	equipment := entities.Equipment{
		ID:                    uuid.NewString(),
		Area:                  strings.TrimSpace(payload.Area),
		EquipmentType:         entities.EquipmentType(payload.EquipmentType),
		DeviceName:            strings.TrimSpace(payload.DeviceName),
		Brand:                 strings.TrimSpace(payload.Brand),
		Model:                 strings.TrimSpace(payload.Model),
		SerialNumber:          strings.TrimSpace(payload.SerialNumber),
		MaintenanceType:       entities.MaintenanceType(payload.MaintenanceType),
		MaintenanceDate:       now,
		EquipmentStatus:       entities.EquipmentStatus(payload.EquipmentStatus),
		Notes:                 payload.Notes,
		ResponsibleTechnician: caller.FullName,
		CreatedBy:             caller.Username,
		CreatedAt:             now,
	}
	if equipment.EquipmentStatus == "" {
		equipment.EquipmentStatus = entities.EquipmentStatusOperational
	}
	normalizeDeviceName(&equipment)

	if err := validateEquipment(&equipment); err != nil {
		return nil, err
	}

	created, err := s.equipmentRepository.Create(ctx, nil, equipment)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование успешно создано",
		zap.String("id", created.ID),
		zap.String("serial_number", created.SerialNumber),
		zap.String("created_by", caller.Username),
	)
	result := equipmentEntityToDTO(created)
	return &result, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, caller authz.Caller, id string, patch dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := authz.Require(caller, authz.EquipmentUpdate); err != nil {
		return nil, err
	}

	var updated *entities.Equipment
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipmentRepository.FindByID(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, equipmentEntity, id)
		}

		applyEquipmentPatch(current, patch)
		normalizeDeviceName(current)
		if err := validateEquipment(current); err != nil {
			return err
		}

		now := s.now()
		current.MaintenanceDate = now
		current.UpdatedAt = null.TimeFrom(now)
		current.UpdatedBy = null.StringFrom(caller.Username)

		updated, err = s.equipmentRepository.Update(ctx, tx, *current)
		if err != nil {
			return notFoundOr(err, equipmentEntity, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Оборудование обновлено", zap.String("id", id), zap.String("updated_by", caller.Username))
	result := equipmentEntityToDTO(updated)
	return &result, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.Require(caller, authz.EquipmentDelete); err != nil {
		return err
	}

	if err := s.equipmentRepository.Delete(ctx, nil, id); err != nil {
		return notFoundOr(err, equipmentEntity, id)
	}
	s.logger.Info("Оборудование удалено", zap.String("id", id), zap.String("deleted_by", caller.Username))
	return nil
}

// ExportEquipment выгружает все записи, прошедшие фильтр, без пагинации.
func (s *EquipmentService) ExportEquipment(ctx context.Context, caller authz.Caller, filter dto.EquipmentFilterDTO) ([]byte, error) {
	if err := authz.Require(caller, authz.EquipmentExport); err != nil {
		return nil, err
	}

	records, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	content, err := EncodeEquipmentXLSX(records)
	if err != nil {
		s.logger.Error("Ошибка формирования Excel-отчёта", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Сформирован Excel-отчёт", zap.Int("rows", len(records)), zap.String("user", caller.Username))
	return content, nil
}

func applyEquipmentPatch(e *entities.Equipment, patch dto.UpdateEquipmentDTO) {
	if patch.Area != nil {
		e.Area = strings.TrimSpace(*patch.Area)
	}
	if patch.EquipmentType != nil {
		e.EquipmentType = entities.EquipmentType(*patch.EquipmentType)
	}
	if patch.DeviceName != nil {
		e.DeviceName = strings.TrimSpace(*patch.DeviceName)
	}
	if patch.Brand != nil {
		e.Brand = strings.TrimSpace(*patch.Brand)
	}
	if patch.Model != nil {
		e.Model = strings.TrimSpace(*patch.Model)
	}
	if patch.SerialNumber != nil {
		e.SerialNumber = strings.TrimSpace(*patch.SerialNumber)
	}
	if patch.MaintenanceType != nil {
		e.MaintenanceType = entities.MaintenanceType(*patch.MaintenanceType)
	}
	if patch.EquipmentStatus != nil {
		e.EquipmentStatus = entities.EquipmentStatus(*patch.EquipmentStatus)
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
}

// Имя устройства хранится только у системных блоков.
func normalizeDeviceName(e *entities.Equipment) {
	if e.EquipmentType != entities.EquipmentTypeCPU {
		e.DeviceName = ""
	}
}

func validateEquipment(e *entities.Equipment) error {
	required := []struct {
		field string
		value string
	}{
		{"area", e.Area},
		{"brand", e.Brand},
		{"model", e.Model},
		{"serial_number", e.SerialNumber},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.NewValidationError(r.field, "обязательное поле")
		}
	}
	if !e.EquipmentType.Valid() {
		return apperrors.NewValidationError("equipment_type", "неизвестный тип оборудования '%s'", e.EquipmentType)
	}
	if !e.MaintenanceType.Valid() {
		return apperrors.NewValidationError("maintenance_type", "неизвестный тип обслуживания '%s'", e.MaintenanceType)
	}
	if !e.EquipmentStatus.Valid() {
		return apperrors.NewValidationError("equipment_status", "неизвестный статус '%s'", e.EquipmentStatus)
	}
	return nil
}

// notFoundOr переводит ErrNotFound репозитория в NotFoundError с сущностью и id.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		return apperrors.NewNotFoundError(entity, id)
	}
	return err
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullTime(t null.Time) *string {
	if !t.Valid {
		return nil
	}
	s := formatTimestamp(t.Time)
	return &s
}

func equipmentEntityToDTO(e *entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:                    e.ID,
		Area:                  e.Area,
		EquipmentType:         string(e.EquipmentType),
		DeviceName:            e.DeviceName,
		Brand:                 e.Brand,
		Model:                 e.Model,
		SerialNumber:          e.SerialNumber,
		MaintenanceType:       string(e.MaintenanceType),
		MaintenanceDate:       formatTimestamp(e.MaintenanceDate),
		EquipmentStatus:       string(e.EquipmentStatus),
		Notes:                 e.Notes,
		ResponsibleTechnician: e.ResponsibleTechnician,
		CreatedBy:             e.CreatedBy,
		CreatedAt:             formatTimestamp(e.CreatedAt),
		UpdatedAt:             formatNullTime(e.UpdatedAt),
		UpdatedBy:             e.UpdatedBy.Ptr(),
	}
}
