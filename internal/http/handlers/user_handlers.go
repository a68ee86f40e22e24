package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/http/response"
)

// CreateUser handles POST /users. Registration is idempotent by email: a
// repeat submission acknowledges the existing record instead of failing, so
// social-login frontends can post unconditionally on every sign-in.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	id, err := h.users.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			response.BadRequest(w, "valid email is required")
			return
		}
		response.InternalError(w, "failed to create user")
		return
	}

	if id == 0 {
		writeJSON(w, http.StatusOK, insertResult{Message: "user already exist. do not need to create new user"})
		return
	}
	writeJSON(w, http.StatusCreated, insertedID(id))
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateUser handles PATCH /users/{id}. A user may edit their own profile;
// admins may edit anyone's.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	target, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to update user")
		return
	}
	if target == nil {
		writeJSON(w, http.StatusOK, updateResult{})
		return
	}
	if !h.canAccessEmail(r, target.Email) {
		response.Forbidden(w, "forbidden access")
		return
	}

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	modified, err := h.users.UpdateProfile(r.Context(), id, patch)
	if err != nil {
		response.InternalError(w, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, updateResult{MatchedCount: 1, ModifiedCount: modified})
}

// PromoteUser handles PATCH /users/admin/{id}.
func (h *Handlers) PromoteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	modified, err := h.users.Promote(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to update user role")
		return
	}
	writeJSON(w, http.StatusOK, updateResult{MatchedCount: modified, ModifiedCount: modified})
}

// BlockUser handles PATCH /users/block/{id}.
func (h *Handlers) BlockUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	modified, err := h.users.Block(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to update user status")
		return
	}
	writeJSON(w, http.StatusOK, updateResult{MatchedCount: modified, ModifiedCount: modified})
}

// CheckAdmin handles GET /users/admin/{email}. Callers may only ask about
// themselves unless they are admin. An unknown email is simply not admin.
func (h *Handlers) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.canAccessEmail(r, email) {
		response.Forbidden(w, "forbidden access")
		return
	}

	admin, err := h.users.IsAdmin(r.Context(), email)
	if err != nil {
		response.InternalError(w, "failed to check role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": admin})
}

// CheckStatus handles GET /users/status/{email}.
func (h *Handlers) CheckStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.canAccessEmail(r, email) {
		response.Forbidden(w, "forbidden access")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		response.InternalError(w, "failed to check status")
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": user.Status})
}

// GetUserInfo handles GET /user/info/{id}.
func (h *Handlers) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to load user")
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}
	if !h.canAccessEmail(r, user.Email) {
		response.Forbidden(w, "forbidden access")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
