package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	settingUsecases "repairdesk/internal/application/setting/usecases"
	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/infrastructure/config"
	"repairdesk/internal/infrastructure/permission"
	"repairdesk/internal/infrastructure/scheduler"
	"repairdesk/internal/interfaces/http/middleware"
	"repairdesk/internal/shared/logger"
)

const (
	notificationBackendMemory = "memory"
	notificationBackendRedis  = "redis"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and owns the background workers
// released by Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Post-commit notification queue
	dispatcher events.EventDispatcher

	// Periodic maintenance jobs
	scheduler *scheduler.SchedulerManager

	// Database-first runtime settings
	settings *settingUsecases.SettingProvider

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	submissionLimiter    *middleware.SubmissionRateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Notifications - Settings, Telegram, Queue
	if err := c.initNotifications(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Repair and Settings - UseCases
	c.ucs = c.newUseCases()

	// Section 4: Scheduled maintenance
	if err := c.initScheduler(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 5: Handlers
	c.hdlrs = c.newHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if c.needsRedis() {
		client, err := initRedis(cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, c.log)
	c.settings = settingUsecases.NewSettingProvider(c.repos.settingRepo, cfg.Telegram, c.log.Named("settings"))

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}

	c.authMiddleware = middleware.NewAuthMiddleware(newJWTService(cfg), c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log)
	c.submissionLimiter = newSubmissionLimiter(cfg, c.redis, c.log)

	return nil
}

func (c *Container) needsRedis() bool {
	return c.cfg.Notification.Backend == notificationBackendRedis || c.cfg.RateLimit.Enabled
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// Shutdown stops scheduled jobs, drains the notification queue and releases
// Redis.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		if err := c.scheduler.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
		c.scheduler = nil
	}

	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Errorw("failed to stop notification dispatcher", "error", err)
		}
		c.dispatcher = nil
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}
