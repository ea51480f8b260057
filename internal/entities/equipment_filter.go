package entities

import "time"

// EquipmentFilter - типизированный набор критериев отбора записей.
// Пустые поля не участвуют в отборе.
type EquipmentFilter struct {
	EquipmentType   EquipmentType
	Area            string
	MaintenanceType MaintenanceType
	EquipmentStatus EquipmentStatus
	DateFrom        *time.Time
	DateTo          *time.Time
	Search          string
}

func (f EquipmentFilter) IsEmpty() bool {
	return f.EquipmentType == "" &&
		f.Area == "" &&
		f.MaintenanceType == "" &&
		f.EquipmentStatus == "" &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		f.Search == ""
}
