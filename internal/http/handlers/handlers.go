package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medinova/medinova-api/internal/http/response"
	"github.com/medinova/medinova-api/internal/repository"
	"github.com/medinova/medinova-api/internal/service"
	"github.com/medinova/medinova-api/pkg/auth"
	"github.com/medinova/medinova-api/pkg/config"
	"github.com/medinova/medinova-api/pkg/logger"
	mw "github.com/medinova/medinova-api/pkg/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const tokenCookie = "token"

type Handlers struct {
	users    service.UserService
	tests    repository.LabTestRepository
	recs     repository.RecommendationRepository
	bookings service.BookingService
	banners  service.BannerService
	payments service.PaymentService
	idem     mw.IdempotencyStore
	config   *config.Config
}

func New(
	users service.UserService,
	tests repository.LabTestRepository,
	recs repository.RecommendationRepository,
	bookings service.BookingService,
	banners service.BannerService,
	payments service.PaymentService,
	idem mw.IdempotencyStore,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		users:    users,
		tests:    tests,
		recs:     recs,
		bookings: bookings,
		banners:  banners,
		payments: payments,
		idem:     idem,
		config:   cfg,
	}
}

// Routes builds the full route table. Guarded routes chain
// RequireAuth -> RequireAdmin -> handler; authorization is re-derived from
// storage on every request.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Root)
	r.Post("/jwt", h.IssueToken)
	r.Get("/logout", h.Logout)

	r.Post("/users", h.CreateUser)
	r.With(h.RequireAuth, h.RequireAdmin).Get("/users", h.ListUsers)
	r.With(h.RequireAuth).Patch("/users/{id}", h.UpdateUser)
	r.With(h.RequireAuth, h.RequireAdmin).Patch("/users/admin/{id}", h.PromoteUser)
	r.With(h.RequireAuth, h.RequireAdmin).Patch("/users/block/{id}", h.BlockUser)
	r.With(h.RequireAuth).Get("/users/admin/{email}", h.CheckAdmin)
	r.With(h.RequireAuth).Get("/users/status/{email}", h.CheckStatus)
	r.With(h.RequireAuth).Get("/user/info/{id}", h.GetUserInfo)

	r.Get("/tests", h.ListTests)
	r.Get("/tests/{id}", h.GetTest)
	r.With(h.RequireAuth, h.RequireAdmin).Post("/tests", h.CreateTest)
	r.With(h.RequireAuth, h.RequireAdmin).Patch("/tests/update/{id}", h.UpdateTest)
	r.With(h.RequireAuth, h.RequireAdmin).Delete("/tests/{id}", h.DeleteTest)

	r.Get("/banner", h.ActiveBanners)
	r.With(h.RequireAuth, h.RequireAdmin).Post("/banner", h.CreateBanner)
	r.With(h.RequireAuth, h.RequireAdmin).Get("/allbanners", h.ListBanners)
	r.With(h.RequireAuth, h.RequireAdmin).Delete("/allbanners/{id}", h.DeleteBanner)
	r.With(h.RequireAuth, h.RequireAdmin).Patch("/allbanners/display/{id}", h.ActivateBanner)

	if h.idem != nil {
		r.With(h.RequireAuth, mw.Idempotency(h.idem)).Post("/bookings", h.CreateBooking)
	} else {
		r.With(h.RequireAuth).Post("/bookings", h.CreateBooking)
	}
	r.With(h.RequireAuth, h.RequireAdmin).Get("/bookings", h.ListBookings)
	r.With(h.RequireAuth).Get("/bookings/{email}", h.ListBookingsByEmail)
	r.With(h.RequireAuth).Delete("/bookings/{id}", h.CancelBooking)
	r.With(h.RequireAuth, h.RequireAdmin).Get("/reservation/{test_id}", h.ListReservations)

	r.Get("/recommendations", h.ListRecommendations)

	r.With(h.RequireAuth).Post("/create-payment-intent", h.CreatePaymentIntent)

	return r
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("MediNova is running"))
}

// RequireAuth verifies the credential token from the Authorization header or
// the token cookie and attaches the decoded claims to the request context.
// Validity is purely a function of signature and expiry.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(tokenCookie); err == nil {
				token = c.Value
			}
		}
		if token == "" {
			response.Unauthorized(w, "unauthorized access")
			return
		}

		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			response.Unauthorized(w, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = context.WithValue(ctx, logger.UserKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows the request iff the stored role for the verified email
// is admin right now. A user demoted mid-session is denied on their next
// guarded request.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r)
		if claims == nil {
			response.Unauthorized(w, "unauthorized access")
			return
		}

		admin, err := h.users.IsAdmin(r.Context(), claims.Email)
		if err != nil {
			response.InternalError(w, "failed to check permissions")
			return
		}
		if !admin {
			response.Forbidden(w, "forbidden access")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// canAccessEmail reports whether the caller may read resources belonging to
// email: either it is their own email or they are a stored admin.
func (h *Handlers) canAccessEmail(r *http.Request, email string) bool {
	claims := getClaims(r)
	if claims == nil {
		return false
	}
	if strings.EqualFold(claims.Email, email) {
		return true
	}
	admin, err := h.users.IsAdmin(r.Context(), claims.Email)
	return err == nil && admin
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// The mutation endpoints echo store operation-result shapes
// (insertedId / matchedCount / deletedCount) for frontend compatibility.

type insertResult struct {
	Message    string `json:"message,omitempty"`
	InsertedID *int64 `json:"insertedId"`
}

type updateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

func insertedID(id int64) insertResult {
	return insertResult{InsertedID: &id}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
