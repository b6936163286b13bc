package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/acasdev/acas-backend/internal/config"
	"github.com/acasdev/acas-backend/internal/handler"
	"github.com/acasdev/acas-backend/internal/middleware"
	"github.com/acasdev/acas-backend/internal/model"
)

// RegisterCourses registers the course endpoints under /courses. Browsing is
// open to every authenticated role; creating and updating require TEACHER or
// ADMIN, and deleting requires ADMIN.
func RegisterCourses(e *echo.Echo, h *handler.CourseHandler, cfg config.Config, cc config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/courses",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleStudent, model.RoleTeacher, model.RoleAdmin),
	)
	g.GET("", h.List)
	// The detail response is identical for every caller, so it is safe to
	// serve from the shared response cache. The list endpoint is NOT cached
	// because enrolled=true depends on the caller's identity.
	g.GET("/:id", h.Get, middleware.ResponseCache(cc, rdb))

	staff := e.Group(
		"/courses",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleTeacher, model.RoleAdmin),
	)
	staff.POST("", h.Create)
	staff.PUT("/:id", h.Update)
	staff.DELETE("/:id", h.Delete, middleware.RequireRole(model.RoleAdmin))
}
