package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming
	"time"     // current time for token expiry checks

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/acasdev/acas-backend/internal/utils" // session token codec
)

// TokenCookieName is the HTTP-only cookie carrying the session token. The
// login handler sets it; the guard falls back to it when no Authorization
// header is present so browser clients work without custom headers.
const TokenCookieName = "token"

// JWTAuth returns an Echo middleware that validates a session token and
// injects the subject and role claims into the request context. The token
// is read from the "Authorization: Bearer" header first, then from the
// token cookie. The provided secret must match the one used when issuing
// tokens. Handlers behind this middleware can read the authenticated
// identity via c.Get("user_id") and c.Get("role").
//
// Missing, malformed and expired tokens all produce the same 401 envelope;
// the guard never lets such a request reach a handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			} else if cookie, err := c.Cookie(TokenCookieName); err == nil {
				raw = cookie.Value
			}
			if raw == "" {
				return unauthenticated(c, "missing token")
			}

			claims, err := utils.ParseSessionToken(secret, raw, time.Now().UTC())
			if err != nil {
				return unauthenticated(c, "invalid or expired token")
			}

			// Downstream handlers and the role middleware consume these.
			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// unauthenticated writes the uniform error envelope with a 401 status.
func unauthenticated(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"data":    nil,
		"message": nil,
		"error":   echo.Map{"code": "UNAUTHENTICATED", "message": msg, "details": nil},
	})
}
