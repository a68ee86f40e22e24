package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/repository"
	"github.com/medinova/medinova-api/pkg/events"
	"github.com/medinova/medinova-api/pkg/logger"
)

type UserService interface {
	// Register inserts a user keyed by email. The returned id is 0 when a
	// record for that email already exists; nothing is mutated in that case.
	Register(ctx context.Context, req *domain.CreateUserRequest) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Promote(ctx context.Context, id int64) (int64, error)
	Block(ctx context.Context, id int64) (int64, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error)
	// IsAdmin is a point-in-time check against live storage; no caching.
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userService struct {
	users repository.UserRepository
	bus   events.Publisher
}

func NewUserService(users repository.UserRepository, bus events.Publisher) UserService {
	return &userService{users: users, bus: bus}
}

func (s *userService) Register(ctx context.Context, req *domain.CreateUserRequest) (int64, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return 0, err
	}

	id, err := s.users.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	if id == 0 {
		return 0, nil
	}

	event := events.UserRegisteredEvent{
		UserID:    id,
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", id)
	}

	return id, nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *userService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) Promote(ctx context.Context, id int64) (int64, error) {
	return s.users.SetRole(ctx, id, domain.RoleAdmin)
}

func (s *userService) Block(ctx context.Context, id int64) (int64, error) {
	return s.users.SetStatus(ctx, id, domain.StatusBlocked)
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	return s.users.UpdateProfile(ctx, id, patch)
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin(), nil
}
