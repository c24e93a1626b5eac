package service

import (
	"context"
	"log/slog"
	"time"

	"vividexpense-be/internal/cache"
)

const loginFailuresPrefix = "login:failures:"

// LoginGuard counts failed logins per email in the cache and locks the email
// out once the limit is reached. A nil guard allows everything. Cache errors
// are logged and never block a login.
type LoginGuard struct {
	cache       cache.Cache
	maxAttempts int64
	window      time.Duration
}

// NewLoginGuard returns nil when c is nil or maxAttempts is not positive.
func NewLoginGuard(c cache.Cache, maxAttempts int, window time.Duration) *LoginGuard {
	if c == nil || maxAttempts <= 0 {
		return nil
	}
	return &LoginGuard{cache: c, maxAttempts: int64(maxAttempts), window: window}
}

func (g *LoginGuard) key(email string) string {
	return loginFailuresPrefix + email
}

// Locked reports whether email has used up its failed attempts.
func (g *LoginGuard) Locked(ctx context.Context, email string) bool {
	if g == nil {
		return false
	}
	n, err := cache.GetInt(ctx, g.cache, g.key(email))
	if err != nil {
		slog.WarnContext(ctx, "login guard lookup failed", "error", err)
		return false
	}
	return n >= g.maxAttempts
}

// Fail records a failed attempt.
func (g *LoginGuard) Fail(ctx context.Context, email string) {
	if g == nil {
		return
	}
	if _, err := g.cache.Incr(ctx, g.key(email), g.window); err != nil {
		slog.WarnContext(ctx, "login guard increment failed", "error", err)
	}
}

// Reset clears the counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) {
	if g == nil {
		return
	}
	if err := g.cache.Delete(ctx, g.key(email)); err != nil {
		slog.WarnContext(ctx, "login guard reset failed", "error", err)
	}
}
