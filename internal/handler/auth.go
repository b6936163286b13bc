package handler

import (
	"context"  // context with cancellation for DB calls
	"log"      // distinct internal failure kinds are logged here
	"net/http" // HTTP status codes and cookie primitives
	"strings"  // email normalization
	"time"     // timeouts and last_login timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/acasdev/acas-backend/internal/config"     // app configuration
	"github.com/acasdev/acas-backend/internal/middleware" // token cookie name
	"github.com/acasdev/acas-backend/internal/model"      // user record and status values
	"github.com/acasdev/acas-backend/internal/repository" // sentinel errors
	"github.com/acasdev/acas-backend/internal/utils"      // hashing and token issuing
)

// UserStore is the slice of the user repository the auth endpoints need.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type loginResp struct {
	User  userPart `json:"user"`
	Token string   `json:"token"`
}

func toUserPart(u model.User) userPart {
	p := userPart{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Avatar.Valid {
		p.Avatar = &u.Avatar.String
	}
	return p
}

// Login verifies credentials and issues a session token. The same
// INVALID_CREDENTIALS envelope is returned whether the email was unknown
// or the password wrong, so responses do not reveal which half of the
// pair failed; the distinct internal kind is only logged. A disabled
// account with the correct password gets ACCOUNT_DISABLED; that check
// runs after password verification, so it cannot be used to probe emails.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, CodeValidation, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			log.Printf("login failed for %s: unknown email", req.Email)
			return fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		log.Printf("login failed for %s: wrong password", req.Email)
		return fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
	}
	if u.Status != model.StatusActive {
		log.Printf("login failed for %s: account disabled", req.Email)
		return fail(c, http.StatusForbidden, CodeAccountDisabled, "account is disabled")
	}

	// Best-effort: a failed last_login write must not fail the login.
	if err := h.Users.UpdateLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		log.Printf("update last_login for %s: %v", u.ID, err)
	}

	st, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Role, time.Now().UTC(), h.Cfg.TokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "issue token failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    st.Token,
		Path:     "/",
		MaxAge:   int(h.Cfg.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return okMsg(c, http.StatusOK, loginResp{User: toUserPart(u), Token: st.Token}, "Login successful")
}

// Logout clears the token cookie and always succeeds. Session tokens are
// stateless, so this only instructs the client to discard its copy; an
// unexpired token that was saved elsewhere remains valid until expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return okMsg(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, currentUserID(c))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return ok(c, http.StatusOK, toUserPart(u))
}
