package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/redis/go-redis/v9"

	"github.com/acasdev/acas-backend/internal/config"
	"github.com/acasdev/acas-backend/internal/handler"
	"github.com/acasdev/acas-backend/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Login and logout live under /auth and do not
// require an existing session; /auth/me requires a valid token.
//
// Login is additionally throttled by a per-client token bucket backed by
// Redis so that credential stuffing is slowed down. The limiter is a no-op
// when Redis is unavailable or disabled.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, cfg config.Config, rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/auth")
	g.POST("/login", a.Login, middleware.RateLimit(rl, rdb))
	// Logout only clears the cookie; tokens are stateless, so no
	// authentication is required to call it.
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(cfg.JWTSecret))
}
