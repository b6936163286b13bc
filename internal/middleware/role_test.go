package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acasdev/acas-backend/internal/utils"
)

func TestRequireRoleAllowList(t *testing.T) {
	handlerRan := false
	e := echo.New()
	e.POST("/courses", func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusCreated)
	}, JWTAuth(testSecret), RequireRole("TEACHER", "ADMIN"))

	// A student must be rejected before the handler runs.
	st, err := utils.NewSessionToken(testSecret, "student-1", "STUDENT", time.Now().UTC(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+st.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if handlerRan {
		t.Fatalf("handler ran despite forbidden role")
	}

	// A teacher passes.
	tt, err := utils.NewSessionToken(testSecret, "teacher-1", "TEACHER", time.Now().UTC(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+tt.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !handlerRan {
		t.Fatalf("handler did not run for allowed role")
	}
}

func TestRequireRoleMissingRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireRole("ADMIN"))

	// No JWTAuth in front, so the context has no role at all.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when role missing, got %d", rec.Code)
	}
}
