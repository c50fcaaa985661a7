package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
	"github.com/helpdesk-ai/helpdesk/internal/shared/utils"
)

// RateLimiter throttles submissions per client IP. Requests pass when the
// backing store is unavailable so a Redis outage never blocks intake.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limit   ratelimit.Limit
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, limit ratelimit.Limit, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		logger:  log,
	}
}

// Limit returns a Gin middleware that enforces the limit for the given scope.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:ip:%s", scope, c.ClientIP())

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limit)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request",
				"scope", scope,
				"client_ip", c.ClientIP(),
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
