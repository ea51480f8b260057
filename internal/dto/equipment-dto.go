package dto

type CreateEquipmentDTO struct {
	Area            string `json:"area" validate:"notblank"`
	EquipmentType   string `json:"equipment_type" validate:"equipment_type"`
	DeviceName      string `json:"device_name" validate:"omitempty,max=255"`
	Brand           string `json:"brand" validate:"notblank"`
	Model           string `json:"model" validate:"notblank"`
	SerialNumber    string `json:"serial_number" validate:"notblank"`
	MaintenanceType string `json:"maintenance_type" validate:"maintenance_type"`
	EquipmentStatus string `json:"equipment_status" validate:"omitempty,equipment_status"`
	Notes           string `json:"notes"`
}

// UpdateEquipmentDTO - частичное обновление; nil означает "не менять".
type UpdateEquipmentDTO struct {
	Area            *string `json:"area,omitempty"             validate:"omitempty,notblank"`
	EquipmentType   *string `json:"equipment_type,omitempty"   validate:"omitempty,equipment_type"`
	DeviceName      *string `json:"device_name,omitempty"      validate:"omitempty,max=255"`
	Brand           *string `json:"brand,omitempty"            validate:"omitempty,notblank"`
	Model           *string `json:"model,omitempty"            validate:"omitempty,notblank"`
	SerialNumber    *string `json:"serial_number,omitempty"    validate:"omitempty,notblank"`
	MaintenanceType *string `json:"maintenance_type,omitempty" validate:"omitempty,maintenance_type"`
	EquipmentStatus *string `json:"equipment_status,omitempty" validate:"omitempty,equipment_status"`
	Notes           *string `json:"notes,omitempty"`
}

// EquipmentFilterDTO - спецификация фильтра в сыром виде (тело запроса или query).
type EquipmentFilterDTO struct {
	EquipmentType   string `json:"equipment_type" query:"equipment_type"`
	Area            string `json:"area" query:"area"`
	MaintenanceType string `json:"maintenance_type" query:"maintenance_type"`
	EquipmentStatus string `json:"equipment_status" query:"equipment_status"`
	DateFrom        string `json:"date_from" query:"date_from"`
	DateTo          string `json:"date_to" query:"date_to"`
	Search          string `json:"search" query:"search"`
}

type EquipmentDTO struct {
	ID                    string  `json:"id"`
	Area                  string  `json:"area"`
	EquipmentType         string  `json:"equipment_type"`
	DeviceName            string  `json:"device_name,omitempty"`
	Brand                 string  `json:"brand"`
	Model                 string  `json:"model"`
	SerialNumber          string  `json:"serial_number"`
	MaintenanceType       string  `json:"maintenance_type"`
	MaintenanceDate       string  `json:"maintenance_date"`
	EquipmentStatus       string  `json:"equipment_status"`
	Notes                 string  `json:"notes"`
	ResponsibleTechnician string  `json:"responsible_technician"`
	CreatedBy             string  `json:"created_by"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             *string `json:"updated_at"`
	UpdatedBy             *string `json:"updated_by"`
}
