package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	dashboardCtrl *controllers.DashboardController,
	authMW *middleware.AuthMiddleware,
) {
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboardStats, authMW.Authorize(authz.DashboardView))
	secureGroup.POST("/export/excel", equipmentCtrl.ExportExcel, authMW.Authorize(authz.EquipmentExport))
}
