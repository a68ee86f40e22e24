package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/http/response"
)

type createBookingRequest struct {
	TestID      int64     `json:"test_id"`
	BookingDate time.Time `json:"booking_date"`
}

// CreateBooking handles POST /bookings. The booking is always recorded
// against the verified caller; the body cannot book on someone else's behalf.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.TestID <= 0 {
		response.BadRequest(w, "test_id is required")
		return
	}
	if req.BookingDate.IsZero() {
		response.BadRequest(w, "booking_date is required")
		return
	}

	booking, err := h.bookings.Create(r.Context(), &domain.CreateBookingRequest{
		UserEmail:   claims.Email,
		TestID:      req.TestID,
		BookingDate: req.BookingDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "test not found")
			return
		}
		response.InternalError(w, "failed to create booking")
		return
	}
	writeJSON(w, http.StatusCreated, insertedID(booking.ID))
}

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	bookings, err := h.bookings.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListBookingsByEmail handles GET /bookings/{email}. Owner or admin only.
func (h *Handlers) ListBookingsByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.canAccessEmail(r, email) {
		response.Forbidden(w, "forbidden access")
		return
	}

	limit, offset := parsePagination(r)
	bookings, err := h.bookings.ListByEmail(r.Context(), email, limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListReservations handles GET /reservation/{test_id}.
func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	testID, ok := parseID(r, "test_id")
	if !ok {
		response.BadRequest(w, "invalid test id")
		return
	}

	limit, offset := parsePagination(r)
	bookings, err := h.bookings.ListByTest(r.Context(), testID, limit, offset)
	if err != nil {
		response.InternalError(w, "failed to list reservations")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// CancelBooking handles DELETE /bookings/{id}. Only the owner or an admin may
// cancel; a missing booking answers with a zero count.
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "invalid booking id")
		return
	}

	admin, err := h.users.IsAdmin(r.Context(), claims.Email)
	if err != nil {
		response.InternalError(w, "failed to cancel booking")
		return
	}

	deleted, err := h.bookings.Cancel(r.Context(), id, claims.Email, admin)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			response.Forbidden(w, "forbidden access")
			return
		}
		response.InternalError(w, "failed to cancel booking")
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{DeletedCount: deleted})
}
