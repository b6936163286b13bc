package router

import (
	"github.com/labstack/echo/v4"

	"github.com/acasdev/acas-backend/internal/config"
	"github.com/acasdev/acas-backend/internal/handler"
	"github.com/acasdev/acas-backend/internal/middleware"
	"github.com/acasdev/acas-backend/internal/model"
)

// RegisterStudents registers student roster management under /students. The
// whole group requires TEACHER or ADMIN; deleting a student additionally
// requires ADMIN.
func RegisterStudents(e *echo.Echo, h *handler.StudentHandler, cfg config.Config) {
	g := e.Group(
		"/students",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleTeacher, model.RoleAdmin),
	)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete, middleware.RequireRole(model.RoleAdmin))

	// Enrollment management lives under the student resource.
	g.POST("/:id/enroll", h.Enroll)
	g.DELETE("/:id/enroll/:courseId", h.Unenroll)
}
