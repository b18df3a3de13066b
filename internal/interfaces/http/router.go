package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"repairdesk/internal/infrastructure/config"
	"repairdesk/internal/interfaces/http/middleware"
	"repairdesk/internal/interfaces/http/routes"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/utils"
)

// Router exposes the wired container as an HTTP engine.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	utils.SetExposeDiagnostics(!cfg.Server.IsProduction())

	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.healthCheck)
	r.engine.Static("/uploads", r.cfg.Uploads.RootDir)

	routes.SetupRepairRoutes(r.engine, &routes.RepairRouteConfig{
		RepairHandler:        r.hdlrs.repairHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		SubmissionLimiter:    r.submissionLimiter,
	})

	routes.SetupSettingRoutes(r.engine, &routes.SettingRouteConfig{
		SettingHandler:       r.hdlrs.settingHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// healthCheck reports database reachability.
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		r.log.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown stops background workers. Call after the HTTP server has drained.
func (r *Router) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		r.Container.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.log.Warnw("background shutdown did not finish in time", "error", ctx.Err())
	}
}
