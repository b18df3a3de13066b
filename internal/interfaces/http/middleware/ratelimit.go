package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/infrastructure/ratelimit"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/utils"
)

// SubmissionRateLimiter caps how many repairs one user may submit per
// window. Counters live in Redis so every instance shares them.
type SubmissionRateLimiter struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewSubmissionRateLimiter(limiter ratelimit.RateLimiter, limits ratelimit.Limits, logger logger.Interface) *SubmissionRateLimiter {
	return &SubmissionRateLimiter{
		limiter: limiter,
		limits:  limits,
		logger:  logger,
	}
}

// Limit must run after RequireAuth.
func (rl *SubmissionRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limits.IsZero() {
			c.Next()
			return
		}

		key := fmt.Sprintf("repair:create:user:%d", c.GetUint(constants.ContextKeyUserID))
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			// Redis being down must not block submissions.
			rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, errors.ErrorTypeRateLimited, "too many repair requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
