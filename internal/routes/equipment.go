package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments, authMW.Authorize(authz.EquipmentList))
	secureGroup.POST("/equipment/filter", equipmentCtrl.FilterEquipments, authMW.Authorize(authz.EquipmentList))
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment, authMW.Authorize(authz.EquipmentList))
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, authMW.Authorize(authz.EquipmentCreate))
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, authMW.Authorize(authz.EquipmentUpdate))
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, authMW.Authorize(authz.EquipmentDelete))
}
