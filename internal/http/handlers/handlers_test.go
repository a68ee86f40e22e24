package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/payments"
	"github.com/medinova/medinova-api/pkg/auth"
	"github.com/medinova/medinova-api/pkg/config"
)

type env struct {
	users    *mockUserService
	tests    *mockLabTestRepo
	recs     *mockRecRepo
	bookings *mockBookingService
	banners  *mockBannerService
	payments *mockPaymentService
	cfg      *config.Config
	router   http.Handler
}

func newEnv(users ...*domain.User) *env {
	e := &env{
		users:    newMockUserService(users...),
		tests:    newMockLabTestRepo(),
		recs:     &mockRecRepo{},
		bookings: newMockBookingService(),
		banners:  newMockBannerService(),
		payments: &mockPaymentService{intent: &payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}},
		cfg:      testConfig(),
	}
	e.rebuild()
	return e
}

func (e *env) rebuild() {
	h := New(e.users, e.tests, e.recs, e.bookings, e.banners, e.payments, nil, e.cfg)
	e.router = h.Routes()
}

func (e *env) token(t *testing.T, email, role string) string {
	t.Helper()
	token, err := auth.NewToken(email, role, e.cfg.Auth.JWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func adminUser(id int64, email string) *domain.User {
	return &domain.User{ID: id, Email: email, Name: "Admin", Role: domain.RoleAdmin, Status: domain.StatusActive}
}

func regularUser(id int64, email string) *domain.User {
	return &domain.User{ID: id, Email: email, Name: "User", Role: domain.RoleUser, Status: domain.StatusActive}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/users", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"unauthorized access","code":"UNAUTHORIZED"}`, w.Body.String())
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/users", "not-a-jwt", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	e := newEnv(adminUser(1, "admin@medinova.io"))
	token, err := auth.NewToken("admin@medinova.io", domain.RoleAdmin, e.cfg.Auth.JWTSecret, -time.Minute)
	require.NoError(t, err)

	w := e.do(t, http.MethodGet, "/users", token, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	e := newEnv(adminUser(1, "admin@medinova.io"))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: e.token(t, "admin@medinova.io", domain.RoleAdmin)})
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_StoredAdminAllowed(t *testing.T) {
	e := newEnv(adminUser(1, "admin@medinova.io"))

	w := e.do(t, http.MethodGet, "/users", e.token(t, "admin@medinova.io", domain.RoleAdmin), nil)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_RegularUserForbidden(t *testing.T) {
	e := newEnv(regularUser(2, "user@medinova.io"))

	w := e.do(t, http.MethodGet, "/users", e.token(t, "user@medinova.io", domain.RoleUser), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"error":"forbidden access","code":"FORBIDDEN"}`, w.Body.String())
}

// A token minted while the caller was admin stops working the moment storage
// says otherwise.
func TestRequireAdmin_DemotedMidSession(t *testing.T) {
	e := newEnv(adminUser(1, "admin@medinova.io"))
	token := e.token(t, "admin@medinova.io", domain.RoleAdmin)

	w := e.do(t, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	e.users.byEmail["admin@medinova.io"].Role = domain.RoleUser

	w = e.do(t, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthRouteAbsentFromRouter(t *testing.T) {
	// /healthz is served by middleware in front of the router, so the router
	// itself must not claim it.
	e := newEnv()

	w := e.do(t, http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoot(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "MediNova")
}
