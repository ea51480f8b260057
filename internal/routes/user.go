package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	admin := secureGroup.Group("/admin")

	admin.GET("/users", userCtrl.GetUsers, authMW.Authorize(authz.UsersList))
	admin.GET("/users/:id", userCtrl.FindUser, authMW.Authorize(authz.UsersList))
	admin.POST("/users", userCtrl.CreateUser, authMW.Authorize(authz.UsersCreate))
	admin.PUT("/users/:id", userCtrl.UpdateUser, authMW.Authorize(authz.UsersUpdate))
	admin.DELETE("/users/:id", userCtrl.DeleteUser, authMW.Authorize(authz.UsersDelete))
	admin.POST("/users/:id/reset-password", userCtrl.ResetPassword, authMW.Authorize(authz.UsersResetPassword))
}
