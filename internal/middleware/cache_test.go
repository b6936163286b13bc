package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/acasdev/acas-backend/internal/config"
)

func cacheFixture(t *testing.T) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.CacheConfig{
		Enabled:      true,
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}

	e := echo.New()
	e.GET("/courses/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "course="+c.Param("id"))
	}, ResponseCache(cfg, rdb))
	return e
}

func getPath(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCacheKeysOnConcretePath(t *testing.T) {
	e := cacheFixture(t)

	first := getPath(t, e, "/courses/aaa")
	if first.Body.String() != "course=aaa" {
		t.Fatalf("first course body = %q", first.Body.String())
	}

	// A different id on the same route must never see the first body.
	second := getPath(t, e, "/courses/bbb")
	if second.Body.String() != "course=bbb" {
		t.Fatalf("second course served wrong body: got %q, want %q", second.Body.String(), "course=bbb")
	}
	if second.Header().Get("X-Cache") == "HIT" {
		t.Fatal("distinct course id must not hit the first entry")
	}
}

func TestResponseCacheServesHitOnRepeat(t *testing.T) {
	e := cacheFixture(t)

	if rec := getPath(t, e, "/courses/aaa"); rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first request X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
	again := getPath(t, e, "/courses/aaa")
	if again.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("repeat request X-Cache = %q, want HIT", again.Header().Get("X-Cache"))
	}
	if again.Body.String() != "course=aaa" {
		t.Fatalf("cached body = %q", again.Body.String())
	}
}

func TestResponseCacheDistinguishesQueries(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 20}

	e := echo.New()
	e.GET("/courses", func(c echo.Context) error {
		return c.String(http.StatusOK, "page="+c.QueryParam("page"))
	}, ResponseCache(cfg, rdb))

	if rec := getPath(t, e, "/courses?page=1"); rec.Body.String() != "page=1" {
		t.Fatalf("page 1 body = %q", rec.Body.String())
	}
	if rec := getPath(t, e, "/courses?page=2"); rec.Body.String() != "page=2" {
		t.Fatalf("page 2 body = %q", rec.Body.String())
	}
}
