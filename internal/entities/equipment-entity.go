package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentType string

const (
	EquipmentTypeCPU     EquipmentType = "cpu"
	EquipmentTypeMonitor EquipmentType = "monitor"
	EquipmentTypePrinter EquipmentType = "printer"
)

func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentTypeCPU, EquipmentTypeMonitor, EquipmentTypePrinter:
		return true
	}
	return false
}

type MaintenanceType string

const (
	MaintenanceTypePreventive MaintenanceType = "preventive"
	MaintenanceTypeCorrective MaintenanceType = "corrective"
	MaintenanceTypeCleaning   MaintenanceType = "cleaning"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypeCleaning:
		return true
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentStatusOperational  EquipmentStatus = "operational"
	EquipmentStatusUnderRepair  EquipmentStatus = "under_repair"
	EquipmentStatusOutOfService EquipmentStatus = "out_of_service"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusOperational, EquipmentStatusUnderRepair, EquipmentStatusOutOfService:
		return true
	}
	return false
}

// Equipment - одна запись об обслуживании оборудования.
type Equipment struct {
	ID              string          `json:"id" db:"id"`
	Area            string          `json:"area" db:"area"`
	EquipmentType   EquipmentType   `json:"equipment_type" db:"equipment_type"`
	DeviceName      string          `json:"device_name" db:"device_name"`
	Brand           string          `json:"brand" db:"brand"`
	Model           string          `json:"model" db:"model"`
	SerialNumber    string          `json:"serial_number" db:"serial_number"`
	MaintenanceType MaintenanceType `json:"maintenance_type" db:"maintenance_type"`
	MaintenanceDate time.Time       `json:"maintenance_date" db:"maintenance_date"`
	EquipmentStatus EquipmentStatus `json:"equipment_status" db:"equipment_status"`
	Notes           string          `json:"notes" db:"notes"`

	// Заполняется из вызывающего пользователя при создании и больше не меняется.
	ResponsibleTechnician string `json:"responsible_technician" db:"responsible_technician"`
	CreatedBy             string `json:"created_by" db:"created_by"`

	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt null.Time   `json:"updated_at" db:"updated_at"`
	UpdatedBy null.String `json:"updated_by" db:"updated_by"`
}
