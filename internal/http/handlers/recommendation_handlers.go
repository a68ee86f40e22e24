package handlers

import (
	"net/http"

	"github.com/medinova/medinova-api/internal/http/response"
)

// ListRecommendations handles GET /recommendations.
func (h *Handlers) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	recs, err := h.recs.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list recommendations")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
