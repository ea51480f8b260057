package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/login", authCtrl.Login)

	secureGroup.GET("/me", authCtrl.Me)
	secureGroup.POST("/change-password", authCtrl.ChangePassword)
}
