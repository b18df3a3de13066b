package routes

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/infrastructure/permission"
	settinghandlers "repairdesk/internal/interfaces/http/handlers/setting"
	"repairdesk/internal/interfaces/http/middleware"
)

type SettingRouteConfig struct {
	SettingHandler       *settinghandlers.SettingHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupSettingRoutes(engine *gin.Engine, config *SettingRouteConfig) {
	pm := config.PermissionMiddleware

	settings := engine.Group("/settings")
	settings.Use(config.AuthMiddleware.RequireAuth())
	{
		settings.GET("/telegram",
			pm.RequirePermission(permission.ResourceSetting, permission.ActionRead),
			config.SettingHandler.GetTelegramSettings)
		settings.PUT("/telegram",
			pm.RequirePermission(permission.ResourceSetting, permission.ActionUpdate),
			config.SettingHandler.UpdateTelegramSettings)
	}
}
