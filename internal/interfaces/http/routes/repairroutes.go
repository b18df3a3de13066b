package routes

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/infrastructure/permission"
	repairhandlers "repairdesk/internal/interfaces/http/handlers/repair"
	"repairdesk/internal/interfaces/http/middleware"
)

type RepairRouteConfig struct {
	RepairHandler        *repairhandlers.RepairHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	SubmissionLimiter    *middleware.SubmissionRateLimiter
}

func SetupRepairRoutes(engine *gin.Engine, config *RepairRouteConfig) {
	pm := config.PermissionMiddleware

	repairs := engine.Group("/repairs")
	repairs.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		repairs.POST("",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionCreate),
			config.SubmissionLimiter.Limit(),
			config.RepairHandler.CreateRepair)
		repairs.GET("",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionRead),
			config.RepairHandler.ListRepairs)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		repairs.PATCH("/:id/status",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionUpdateStatus),
			config.RepairHandler.UpdateStatus)

		// Generic parameterized routes (must come LAST)
		repairs.GET("/:id",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionRead),
			config.RepairHandler.GetRepair)
		repairs.PUT("/:id",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionUpdate),
			config.RepairHandler.UpdateRepair)
		repairs.DELETE("/:id",
			pm.RequirePermission(permission.ResourceRepair, permission.ActionDelete),
			config.RepairHandler.DeleteRepair)
	}
}
