package dto

type RecentMaintenanceDTO struct {
	ID                    string `json:"id"`
	EquipmentType         string `json:"equipment_type"`
	Brand                 string `json:"brand"`
	Model                 string `json:"model"`
	MaintenanceType       string `json:"maintenance_type"`
	MaintenanceDate       string `json:"maintenance_date"`
	ResponsibleTechnician string `json:"responsible_technician"`
}

type DashboardStatsDTO struct {
	TotalEquipments    int                    `json:"total_equipments"`
	EquipmentsByType   map[string]int         `json:"equipments_by_type"`
	EquipmentsByStatus map[string]int         `json:"equipments_by_status"`
	MaintenanceByType  map[string]int         `json:"maintenance_by_type"`
	RecentMaintenances []RecentMaintenanceDTO `json:"recent_maintenances"`
}
