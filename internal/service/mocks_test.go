package service

import (
	"context"
	"strings"
	"time"

	"github.com/medinova/medinova-api/internal/domain"
)

type publishedEvent struct {
	subject string
	data    interface{}
}

type mockBus struct {
	events []publishedEvent
	err    error
}

func (m *mockBus) Publish(ctx context.Context, subject string, data interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{subject: subject, data: data})
	return nil
}

func (m *mockBus) Close() error { return nil }

func (m *mockBus) subjects() []string {
	var out []string
	for _, e := range m.events {
		out = append(out, e.subject)
	}
	return out
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendBookingConfirmation(toEmail, toName, testTitle string, bookingDate time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type mockUserRepo struct {
	byEmail   map[string]*domain.User
	byID      map[int64]*domain.User
	nextID    int64
	createErr error
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		nextID:  100,
	}
	for _, u := range users {
		m.byEmail[strings.ToLower(u.Email)] = u
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.byEmail[strings.ToLower(email)], nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) Create(ctx context.Context, req *domain.CreateUserRequest) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	if _, ok := m.byEmail[req.Email]; ok {
		return 0, nil
	}
	m.nextID++
	u := &domain.User{ID: m.nextID, Email: req.Email, Name: req.Name, Role: domain.RoleUser, Status: domain.StatusActive}
	m.byEmail[req.Email] = u
	m.byID[u.ID] = u
	return u.ID, nil
}

func (m *mockUserRepo) SetRole(ctx context.Context, id int64, role string) (int64, error) {
	u, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

func (m *mockUserRepo) SetStatus(ctx context.Context, id int64, status string) (int64, error) {
	u, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	u.Status = status
	return 1, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	u, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		u.PhotoURL = *patch.PhotoURL
	}
	return 1, nil
}

type mockBookingRepo struct {
	byID      map[int64]*domain.Booking
	nextID    int64
	createErr error
	deleteErr error
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		m.byID[b.ID] = b
		if b.ID > m.nextID {
			m.nextID = b.ID
		}
	}
	return m
}

func (m *mockBookingRepo) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	b := &domain.Booking{
		ID:          m.nextID,
		UserEmail:   req.UserEmail,
		TestID:      req.TestID,
		BookingDate: req.BookingDate,
		Status:      domain.BookingBooked,
		CreatedAt:   time.Now(),
	}
	m.byID[b.ID] = b
	return b, nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.byID[id], nil
}

func (m *mockBookingRepo) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepo) ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		if b.IsOwner(email) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.byID {
		if b.TestID == testID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type mockLabTestRepo struct {
	byID map[int64]*domain.LabTest
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

type mockBannerRepo struct {
	byID map[int64]*domain.Banner
}

func newMockBannerRepo(banners ...*domain.Banner) *mockBannerRepo {
	m := &mockBannerRepo{byID: make(map[int64]*domain.Banner)}
	for _, b := range banners {
		m.byID[b.ID] = b
	}
	return m
}

func (m *mockBannerRepo) ListActive(ctx context.Context) ([]domain.Banner, error) {
	var out []domain.Banner
	for _, b := range m.byID {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBannerRepo) List(ctx context.Context) ([]domain.Banner, error) {
	var out []domain.Banner
	for _, b := range m.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBannerRepo) Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error) {
	id := int64(len(m.byID) + 1)
	m.byID[id] = &domain.Banner{ID: id, Name: req.Name}
	return id, nil
}

func (m *mockBannerRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func (m *mockBannerRepo) Activate(ctx context.Context, id int64) (int64, error) {
	target, ok := m.byID[id]
	for _, b := range m.byID {
		b.IsActive = false
	}
	if !ok {
		return 0, nil
	}
	target.IsActive = true
	return 1, nil
}
