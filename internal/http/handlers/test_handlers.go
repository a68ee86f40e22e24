package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/http/response"
)

// ListTests handles GET /tests. The catalog is public.
func (h *Handlers) ListTests(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	tests, err := h.tests.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list tests")
		return
	}
	writeJSON(w, http.StatusOK, tests)
}

// GetTest handles GET /tests/{id}.
func (h *Handlers) GetTest(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid test id")
		return
	}

	test, err := h.tests.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to load test")
		return
	}
	if test == nil {
		response.NotFound(w, "test not found")
		return
	}
	writeJSON(w, http.StatusOK, test)
}

// CreateTest handles POST /tests.
func (h *Handlers) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLabTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		response.BadRequest(w, "title is required")
		return
	}
	if req.PriceCents < 0 {
		response.BadRequest(w, "price must not be negative")
		return
	}

	id, err := h.tests.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "failed to create test")
		return
	}
	writeJSON(w, http.StatusCreated, insertedID(id))
}

// UpdateTest handles PATCH /tests/update/{id}. Absent fields keep their
// stored values.
func (h *Handlers) UpdateTest(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid test id")
		return
	}

	var patch domain.LabTestPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if patch.PriceCents != nil && *patch.PriceCents < 0 {
		response.BadRequest(w, "price must not be negative")
		return
	}

	modified, err := h.tests.Update(r.Context(), id, patch)
	if err != nil {
		response.InternalError(w, "failed to update test")
		return
	}
	writeJSON(w, http.StatusOK, updateResult{MatchedCount: modified, ModifiedCount: modified})
}

// DeleteTest handles DELETE /tests/{id}. Deleting an absent id is reported
// through the count, not as an error.
func (h *Handlers) DeleteTest(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid test id")
		return
	}

	deleted, err := h.tests.Delete(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to delete test")
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{DeletedCount: deleted})
}
