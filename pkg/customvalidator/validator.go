// Файл: pkg/customvalidator/validators.go

package customvalidator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"maintenance-system/internal/entities"
)

// RegisterCustomValidations регистрирует все кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"notblank":         isNotBlank,
		"equipment_type":   isEquipmentType,
		"maintenance_type": isMaintenanceType,
		"equipment_status": isEquipmentStatus,
		"account_role":     isAccountRole,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isEquipmentType(fl validator.FieldLevel) bool {
	return entities.EquipmentType(fl.Field().String()).Valid()
}

func isMaintenanceType(fl validator.FieldLevel) bool {
	return entities.MaintenanceType(fl.Field().String()).Valid()
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return entities.EquipmentStatus(fl.Field().String()).Valid()
}

func isAccountRole(fl validator.FieldLevel) bool {
	return entities.Role(fl.Field().String()).Valid()
}
