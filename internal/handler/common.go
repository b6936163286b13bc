package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID that the guard stored
// in the context, or "" when the request is unauthenticated.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok {
		return s
	}
	return ""
}

// pageQuery parses the page/limit query parameters with the defaults the
// frontend uses (page 1, 10 rows) and clamps abusive values.
func pageQuery(c echo.Context) (page, limit int) {
	page, limit = 1, 10
	if v := strings.TrimSpace(c.QueryParam("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	// Bound page as well so the (page-1)*limit OFFSET arithmetic cannot
	// overflow on an absurd but parseable value.
	if page > 1000000 {
		page = 1000000
	}
	return page, limit
}
