package http

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"repairdesk/internal/application/notification"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/infrastructure/auth"
	"repairdesk/internal/infrastructure/config"
	"repairdesk/internal/infrastructure/queue"
	"repairdesk/internal/infrastructure/ratelimit"
	"repairdesk/internal/infrastructure/scheduler"
	"repairdesk/internal/infrastructure/telegram"
	"repairdesk/internal/interfaces/http/middleware"
	"repairdesk/internal/shared/logger"
)

const telegramRequestTimeout = 10 * time.Second

func newJWTService(cfg *config.Config) *auth.JWTService {
	return auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
}

// newSubmissionLimiter returns a limiter that lets everything through when
// rate limiting is disabled.
func newSubmissionLimiter(cfg *config.Config, client *redis.Client, log logger.Interface) *middleware.SubmissionRateLimiter {
	var (
		limiter ratelimit.RateLimiter
		limits  ratelimit.Limits
	)
	if cfg.RateLimit.Enabled && client != nil {
		limiter = ratelimit.NewRedisRateLimiter(client)
		limits = ratelimit.Limits{
			PerMinute: cfg.RateLimit.PerMinute,
			PerHour:   cfg.RateLimit.PerHour,
			PerDay:    cfg.RateLimit.PerDay,
		}
	}
	return middleware.NewSubmissionRateLimiter(limiter, limits, log)
}

// initNotifications builds the post-commit queue and subscribes the Telegram
// handler to it.
func (c *Container) initNotifications() error {
	cfg := c.cfg
	log := c.log.Named("notification")

	dispatcher, err := c.newDispatcher(log)
	if err != nil {
		return err
	}

	sender := telegram.NewDispatcher(telegram.NewClient(telegramRequestTimeout), log)
	handler := notification.NewHandler(c.repos.queryRepo, c.repos.userRepo, c.settings, sender, log)

	if err := handler.Register(dispatcher); err != nil {
		return fmt.Errorf("failed to register notification handler: %w", err)
	}
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatcher: %w", err)
	}
	c.dispatcher = dispatcher

	log.Infow("notification dispatcher started", "backend", cfg.Notification.Backend)
	return nil
}

// initScheduler starts the orphan upload sweep unless its interval is zero.
func (c *Container) initScheduler() error {
	interval := time.Duration(c.cfg.Uploads.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		c.log.Infow("upload sweep disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterUploadSweepJob(c.ucs.sweepUploadsUC, interval); err != nil {
		return fmt.Errorf("failed to register upload sweep: %w", err)
	}
	manager.Start()
	c.scheduler = manager
	return nil
}

func (c *Container) newDispatcher(log logger.Interface) (events.EventDispatcher, error) {
	n := c.cfg.Notification
	switch n.Backend {
	case "", notificationBackendMemory:
		return events.NewInMemoryEventDispatcher(n.QueueSize, n.Workers, log), nil
	case notificationBackendRedis:
		return queue.NewRedisEventDispatcher(c.redis, n.RedisKey, n.QueueSize, n.Workers, repair.DecodeEvent, log), nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", n.Backend)
	}
}
