package seeders

import "maintenance-system/internal/entities"

// Демонстрационные записи для пустой базы.
var equipmentsData = []struct {
	Area            string
	Type            entities.EquipmentType
	DeviceName      string
	Brand           string
	Model           string
	SerialNumber    string
	MaintenanceType entities.MaintenanceType
	Status          entities.EquipmentStatus
	Notes           string
}{
	{"Sistemas", entities.EquipmentTypeCPU, "PC-SIS-01", "HP", "Pavilion g6", "ABC123", entities.MaintenanceTypePreventive, entities.EquipmentStatusOperational, "Limpieza interna y actualización de drivers"},
	{"Sistemas", entities.EquipmentTypeMonitor, "", "Samsung", "S24F350", "MON-0042", entities.MaintenanceTypeCleaning, entities.EquipmentStatusOperational, ""},
	{"Contabilidad", entities.EquipmentTypeCPU, "PC-CON-03", "Dell", "Optiplex 3080", "DL-88231", entities.MaintenanceTypeCorrective, entities.EquipmentStatusUnderRepair, "Cambio de fuente de poder"},
	{"Contabilidad", entities.EquipmentTypePrinter, "", "Epson", "L3150", "EP-55120", entities.MaintenanceTypePreventive, entities.EquipmentStatusOperational, "Limpieza de cabezales"},
	{"Recursos Humanos", entities.EquipmentTypePrinter, "", "HP", "LaserJet M404", "HPLJ-7781", entities.MaintenanceTypeCorrective, entities.EquipmentStatusOutOfService, "Fusor dañado, se solicita repuesto"},
}
