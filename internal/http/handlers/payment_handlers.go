package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/medinova/medinova-api/internal/http/response"
)

type createIntentRequest struct {
	Price float64 `json:"price"`
}

// maxIntentPrice caps the accepted price in dollars. Anything above it is a
// bogus request, and the cap keeps price*100 far away from int64 overflow,
// where the float conversion would wrap to a negative amount.
const maxIntentPrice = 1e9

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent handles POST /create-payment-intent. The price arrives
// in dollars and is validated before the provider is contacted at all.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid price"})
		return
	}
	if req.Price <= 0 || req.Price > maxIntentPrice || math.IsNaN(req.Price) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid price"})
		return
	}

	amountCents := int64(math.Round(req.Price * 100))
	if amountCents <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid price"})
		return
	}
	intent, err := h.payments.CreateIntent(r.Context(), claims.Email, amountCents)
	if err != nil {
		response.InternalError(w, "failed to create payment intent")
		return
	}
	writeJSON(w, http.StatusOK, createIntentResponse{ClientSecret: intent.ClientSecret})
}
