package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medinova/medinova-api/internal/domain"
	"github.com/medinova/medinova-api/internal/mailer"
	"github.com/medinova/medinova-api/internal/repository"
	"github.com/medinova/medinova-api/pkg/events"
	"github.com/medinova/medinova-api/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error)
	ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error)
	// Cancel deletes a booking. A missing id reports zero deletions without
	// error; a requester who neither owns the booking nor is admin gets
	// domain.ErrForbidden.
	Cancel(ctx context.Context, id int64, requesterEmail string, isAdmin bool) (int64, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	tests    repository.LabTestRepository
	users    repository.UserRepository
	bus      events.Publisher
	mail     mailer.Service
}

func NewBookingService(
	bookings repository.BookingRepository,
	tests repository.LabTestRepository,
	users repository.UserRepository,
	bus events.Publisher,
	mail mailer.Service,
) BookingService {
	return &bookingService{
		bookings: bookings,
		tests:    tests,
		users:    users,
		bus:      bus,
		mail:     mail,
	}
}

func (s *bookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	test, err := s.tests.GetByID(ctx, req.TestID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up test: %w", err)
	}
	if test == nil {
		return nil, domain.ErrNotFound
	}

	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:   booking.ID,
		UserEmail:   booking.UserEmail,
		TestID:      booking.TestID,
		BookingDate: booking.BookingDate,
		CreatedAt:   booking.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	// Confirmation mail failure is logged, never fatal to the booking.
	name := booking.UserEmail
	if user, err := s.users.FindByEmail(ctx, booking.UserEmail); err == nil && user != nil && user.Name != "" {
		name = user.Name
	}
	if err := s.mail.SendBookingConfirmation(booking.UserEmail, name, test.Title, booking.BookingDate); err != nil {
		logger.WarnContext(ctx, "Failed to send booking confirmation", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.List(ctx, limit, offset)
}

func (s *bookingService) ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email, limit, offset)
}

func (s *bookingService) ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByTest(ctx, testID, limit, offset)
}

func (s *bookingService) Cancel(ctx context.Context, id int64, requesterEmail string, isAdmin bool) (int64, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return 0, nil
	}
	if !isAdmin && !booking.IsOwner(requesterEmail) {
		return 0, domain.ErrForbidden
	}

	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if deleted > 0 {
		event := events.BookingCanceledEvent{
			BookingID:  booking.ID,
			UserEmail:  booking.UserEmail,
			TestID:     booking.TestID,
			CanceledAt: time.Now(),
		}
		if err := s.bus.Publish(ctx, events.BookingCanceled, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", booking.ID)
		}
	}

	return deleted, nil
}
