package ratelimit

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// unknownClient is the bucket shared by callers whose address cannot be
// resolved, e.g. behind a misconfigured proxy. They share one quota.
const unknownClient = "unknown"

// ClientIdentifier resolves the caller identity from forwarding headers:
// first hop of X-Forwarded-For, then X-Real-IP, else the shared sentinel.
func ClientIdentifier(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return unknownClient
}

// Middleware wraps downstream handlers with an admission check for the named
// limit. Denials answer 429 with a retry hint; admitted requests carry
// remaining-quota headers.
func Middleware(limiter *Limiter, limitName string) fiber.Handler {
	cfg := Preset(limitName)
	return func(c *fiber.Ctx) error {
		key := limitName + ":" + ClientIdentifier(c)
		decision := limiter.Check(c.Context(), key, cfg)

		resetSeconds := int(math.Ceil(decision.ResetIn.Seconds()))
		if !decision.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(resetSeconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Demasiadas solicitudes. Intenta de nuevo en unos momentos.",
				"retryAfter": resetSeconds,
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetSeconds))
		return c.Next()
	}
}
