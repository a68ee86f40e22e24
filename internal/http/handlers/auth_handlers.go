package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medinova/medinova-api/internal/http/response"
	"github.com/medinova/medinova-api/pkg/auth"
	"github.com/medinova/medinova-api/pkg/logger"
)

type issueTokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// IssueToken handles POST /jwt. The role embedded in the token is whatever
// storage holds for that email at mint time; unknown emails get the default
// role. Guarded routes never trust the embedded role alone.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		response.BadRequest(w, "valid email is required")
		return
	}

	role := "user"
	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		response.InternalError(w, "failed to issue token")
		return
	}
	if user != nil {
		role = user.Role
	}

	token, err := auth.NewToken(email, role, h.config.Auth.JWTSecret, h.config.Auth.TokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		response.InternalError(w, "failed to issue token")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.config.Auth.TokenTTL.Seconds())))
	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

// Logout handles GET /logout by expiring the token cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// sessionCookie builds the session cookie. Cross-site frontends need
// SameSite=None, which browsers only accept together with Secure, so the
// insecure dev setup falls back to Strict.
func (h *Handlers) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.config.Auth.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     tokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.Auth.CookieSecure,
		SameSite: sameSite,
	}
}
