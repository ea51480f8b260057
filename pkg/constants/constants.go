// pkg/constants/constants.go
package constants

//============== ПАРОЛИ ==============

// MinPasswordLength - минимальная длина любого пароля (временного, нового, сброшенного).
const MinPasswordLength = 6

//============== ЭКСПОРТ ==============

const (
	ExportFileName    = "reporte_mantenimiento.xlsx"
	ExportSheetName   = "Mantenimiento Equipos"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ExportDateLayout  = "2006-01-02"
)

//============== ДАШБОРД ==============

const DashboardRecentLimit = 5
