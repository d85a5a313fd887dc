package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"letsparkit/internal/shared/utils/response"
	"letsparkit/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware rate limits every matched route by client IP and route class
func Middleware(limiter Limiter) gin.HandlerFunc {
	log := logger.GetDefault().WithComponent("ratelimit")

	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := limiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			log.ErrorWithContext(c.Request.Context(), "Rate limit check failed", err, nil)
			response.Error(c, http.StatusInternalServerError, "Rate limit check failed", nil)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]interface{}{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"),
		strings.HasPrefix(path, "/metrics"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin

	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	// Writes that take or release a slot
	case strings.HasSuffix(path, "/hold"),
		strings.HasSuffix(path, "/cancel"),
		strings.HasSuffix(path, "/payments") && method == http.MethodPost,
		strings.HasSuffix(path, "/bookings") && method == http.MethodPost:
		return RateLimitTypeBookingCritical

	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/holds"),
		strings.Contains(path, "/payments"),
		strings.Contains(path, "/feedback") && !strings.Contains(path, "/locations/"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/locations"),
		strings.Contains(path, "/swagger"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	if xForwardedFor := c.GetHeader("X-Forwarded-For"); xForwardedFor != "" {
		ip := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
