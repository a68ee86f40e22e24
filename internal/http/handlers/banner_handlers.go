package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/http/response"
)

// ActiveBanners handles GET /banner, the public storefront endpoint.
func (h *Handlers) ActiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.ListActive(r.Context())
	if err != nil {
		response.InternalError(w, "failed to load banners")
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

// ListBanners handles GET /allbanners.
func (h *Handlers) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.List(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list banners")
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

// CreateBanner handles POST /banner. New banners start inactive; they only
// show up on the storefront after an explicit activation.
func (h *Handlers) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.BadRequest(w, "name is required")
		return
	}
	if req.DiscountRate < 0 || req.DiscountRate > 100 {
		response.BadRequest(w, "discount rate must be between 0 and 100")
		return
	}

	id, err := h.banners.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "failed to create banner")
		return
	}
	writeJSON(w, http.StatusCreated, insertedID(id))
}

// DeleteBanner handles DELETE /allbanners/{id}.
func (h *Handlers) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid banner id")
		return
	}

	deleted, err := h.banners.Delete(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to delete banner")
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{DeletedCount: deleted})
}

// ActivateBanner handles PATCH /allbanners/display/{id}. The switch is a
// single atomic statement, so no request interleaving can leave two banners
// active.
func (h *Handlers) ActivateBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid banner id")
		return
	}

	matched, err := h.banners.Activate(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to activate banner")
		return
	}
	writeJSON(w, http.StatusOK, updateResult{MatchedCount: matched, ModifiedCount: matched})
}
