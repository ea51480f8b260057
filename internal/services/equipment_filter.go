package services

import (
	"strings"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

const filterDateLayout = "2006-01-02"

// FilterEquipment оставляет записи, удовлетворяющие всем заданным критериям, в исходном порядке.
// Пустой фильтр возвращает входной срез без изменений.
func FilterEquipment(records []entities.Equipment, filter entities.EquipmentFilter) []entities.Equipment {
	if filter.IsEmpty() {
		return records
	}

	search := strings.ToLower(filter.Search)
	result := make([]entities.Equipment, 0, len(records))
	for _, record := range records {
		if matchesFilter(record, filter, search) {
			result = append(result, record)
		}
	}
	return result
}

func matchesFilter(e entities.Equipment, f entities.EquipmentFilter, search string) bool {
	if f.EquipmentType != "" && e.EquipmentType != f.EquipmentType {
		return false
	}
	if f.Area != "" && e.Area != f.Area {
		return false
	}
	if f.MaintenanceType != "" && e.MaintenanceType != f.MaintenanceType {
		return false
	}
	if f.EquipmentStatus != "" && e.EquipmentStatus != f.EquipmentStatus {
		return false
	}
	if f.DateFrom != nil && e.MaintenanceDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.MaintenanceDate.After(*f.DateTo) {
		return false
	}
	if search != "" {
		return strings.Contains(strings.ToLower(e.Brand), search) ||
			strings.Contains(strings.ToLower(e.Model), search) ||
			strings.Contains(strings.ToLower(e.SerialNumber), search)
	}
	return true
}

// ParseEquipmentFilter превращает сырой фильтр в типизированный.
// Некорректное значение любого поля даёт ValidationError с именем этого поля.
func ParseEquipmentFilter(raw dto.EquipmentFilterDTO) (entities.EquipmentFilter, error) {
	filter := entities.EquipmentFilter{Area: raw.Area}
	// Поисковая строка сравнивается как есть; из одних пробелов - не задана.
	if strings.TrimSpace(raw.Search) != "" {
		filter.Search = raw.Search
	}

	if raw.EquipmentType != "" {
		t := entities.EquipmentType(raw.EquipmentType)
		if !t.Valid() {
			return entities.EquipmentFilter{}, apperrors.NewValidationError("equipment_type", "неизвестный тип оборудования '%s'", raw.EquipmentType)
		}
		filter.EquipmentType = t
	}
	if raw.MaintenanceType != "" {
		t := entities.MaintenanceType(raw.MaintenanceType)
		if !t.Valid() {
			return entities.EquipmentFilter{}, apperrors.NewValidationError("maintenance_type", "неизвестный тип обслуживания '%s'", raw.MaintenanceType)
		}
		filter.MaintenanceType = t
	}
	if raw.EquipmentStatus != "" {
		s := entities.EquipmentStatus(raw.EquipmentStatus)
		if !s.Valid() {
			return entities.EquipmentFilter{}, apperrors.NewValidationError("equipment_status", "неизвестный статус '%s'", raw.EquipmentStatus)
		}
		filter.EquipmentStatus = s
	}

	if raw.DateFrom != "" {
		from, _, err := parseFilterDate(raw.DateFrom)
		if err != nil {
			return entities.EquipmentFilter{}, apperrors.NewValidationError("date_from", "неверный формат даты '%s'", raw.DateFrom)
		}
		filter.DateFrom = &from
	}
	if raw.DateTo != "" {
		to, dateOnly, err := parseFilterDate(raw.DateTo)
		if err != nil {
			return entities.EquipmentFilter{}, apperrors.NewValidationError("date_to", "неверный формат даты '%s'", raw.DateTo)
		}
		if dateOnly {
			// дата без времени включает весь день
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.DateTo = &to
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return entities.EquipmentFilter{}, apperrors.NewValidationError("date_to", "date_to раньше date_from")
	}

	return filter, nil
}

func parseFilterDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(filterDateLayout, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
