package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles.  Roles correspond to the values
// carried in the session token's "role" claim.  The check is an
// allow-list: a role outside the set is rejected with a 403 envelope
// before the handler runs, so a forbidden call never reaches the data
// layer.  It assumes JWTAuth has stored the role in the context under the
// key "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Missing or wrongly typed role is treated the same as a
			// disallowed one.
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"data":    nil,
					"message": nil,
					"error":   echo.Map{"code": "FORBIDDEN", "message": "insufficient role", "details": nil},
				})
			}
			return next(c)
		}
	}
}
