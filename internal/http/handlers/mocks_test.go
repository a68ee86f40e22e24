package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/payments"
	"github.com/medinova/medinova-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
	}
}

type mockUserService struct {
	byEmail     map[string]*domain.User
	byID        map[int64]*domain.User
	registerID  int64
	registerErr error
	promoted    []int64
	blocked     []int64
	updated     []int64
	isAdminErr  error
}

func newMockUserService(users ...*domain.User) *mockUserService {
	m := &mockUserService{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
	}
	for _, u := range users {
		m.byEmail[strings.ToLower(u.Email)] = u
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserService) Register(ctx context.Context, req *domain.CreateUserRequest) (int64, error) {
	if m.registerErr != nil {
		return 0, m.registerErr
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if _, ok := m.byEmail[req.Email]; ok {
		return 0, nil
	}
	return m.registerID, nil
}

func (m *mockUserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.byEmail[strings.ToLower(email)], nil
}

func (m *mockUserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.byID[id], nil
}

func (m *mockUserService) Promote(ctx context.Context, id int64) (int64, error) {
	m.promoted = append(m.promoted, id)
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	m.byID[id].Role = domain.RoleAdmin
	return 1, nil
}

func (m *mockUserService) Block(ctx context.Context, id int64) (int64, error) {
	m.blocked = append(m.blocked, id)
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	m.byID[id].Status = domain.StatusBlocked
	return 1, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	m.updated = append(m.updated, id)
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if m.isAdminErr != nil {
		return false, m.isAdminErr
	}
	u := m.byEmail[strings.ToLower(email)]
	return u != nil && u.IsAdmin(), nil
}

type mockBookingService struct {
	byID       map[int64]*domain.Booking
	created    []*domain.CreateBookingRequest
	createErr  error
	cancelArgs []int64
}

func newMockBookingService(bookings ...*domain.Booking) *mockBookingService {
	m := &mockBookingService{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		m.byID[b.ID] = b
	}
	return m
}

func (m *mockBookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, req)
	return &domain.Booking{
		ID:          int64(len(m.created)),
		UserEmail:   req.UserEmail,
		TestID:      req.TestID,
		BookingDate: req.BookingDate,
		Status:      domain.BookingBooked,
	}, nil
}

func (m *mockBookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.byID[id], nil
}

func (m *mockBookingService) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingService) ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		if b.IsOwner(email) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingService) ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		if b.TestID == testID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id int64, requesterEmail string, isAdmin bool) (int64, error) {
	m.cancelArgs = append(m.cancelArgs, id)
	b := m.byID[id]
	if b == nil {
		return 0, nil
	}
	if !isAdmin && !b.IsOwner(requesterEmail) {
		return 0, domain.ErrForbidden
	}
	delete(m.byID, id)
	return 1, nil
}

type mockBannerService struct {
	byID     map[int64]*domain.Banner
	activate []int64
}

func newMockBannerService(banners ...*domain.Banner) *mockBannerService {
	m := &mockBannerService{byID: make(map[int64]*domain.Banner)}
	for _, b := range banners {
		m.byID[b.ID] = b
	}
	return m
}

func (m *mockBannerService) ListActive(ctx context.Context) ([]domain.Banner, error) {
	var out []domain.Banner
	for _, b := range m.byID {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBannerService) List(ctx context.Context) ([]domain.Banner, error) {
	var out []domain.Banner
	for _, b := range m.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBannerService) Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error) {
	id := int64(len(m.byID) + 1)
	m.byID[id] = &domain.Banner{ID: id, Name: req.Name, Title: req.Title}
	return id, nil
}

func (m *mockBannerService) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func (m *mockBannerService) Activate(ctx context.Context, id int64) (int64, error) {
	m.activate = append(m.activate, id)
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	for _, b := range m.byID {
		b.IsActive = b.ID == id
	}
	return 1, nil
}

type mockPaymentService struct {
	calls      int
	lastAmount int64
	lastEmail  string
	intent     *payments.Intent
	err        error
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, userEmail string, amountCents int64) (*payments.Intent, error) {
	m.calls++
	m.lastAmount = amountCents
	m.lastEmail = userEmail
	if m.err != nil {
		return nil, m.err
	}
	return m.intent, nil
}

type mockLabTestRepo struct {
	byID      map[int64]*domain.LabTest
	createErr error
}

func newMockLabTestRepo(tests ...*domain.LabTest) *mockLabTestRepo {
	m := &mockLabTestRepo{byID: make(map[int64]*domain.LabTest)}
	for _, t := range tests {
		m.byID[t.ID] = t
	}
	return m
}

func (m *mockLabTestRepo) List(ctx context.Context, limit, offset int) ([]domain.LabTest, error) {
	var out []domain.LabTest
	for _, t := range m.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockLabTestRepo) GetByID(ctx context.Context, id int64) (*domain.LabTest, error) {
	return m.byID[id], nil
}

func (m *mockLabTestRepo) Create(ctx context.Context, req *domain.CreateLabTestRequest) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := int64(len(m.byID) + 1)
	m.byID[id] = &domain.LabTest{ID: id, Title: req.Title}
	return id, nil
}

func (m *mockLabTestRepo) Update(ctx context.Context, id int64, patch domain.LabTestPatch) (int64, error) {
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (m *mockLabTestRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type mockRecRepo struct {
	recs []domain.Recommendation
}

func (m *mockRecRepo) List(ctx context.Context, limit, offset int) ([]domain.Recommendation, error) {
	return m.recs, nil
}
