package service

import (
	"context"
	"fmt"

	"github.com/medinova/medinova-api/internal/payments"
	"github.com/medinova/medinova-api/pkg/events"
	"github.com/medinova/medinova-api/pkg/logger"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, userEmail string, amountCents int64) (*payments.Intent, error)
}

type paymentService struct {
	provider payments.IntentCreator
	bus      events.Publisher
	currency string
}

func NewPaymentService(provider payments.IntentCreator, bus events.Publisher, currency string) PaymentService {
	return &paymentService{provider: provider, bus: bus, currency: currency}
}

func (s *paymentService) CreateIntent(ctx context.Context, userEmail string, amountCents int64) (*payments.Intent, error) {
	intent, err := s.provider.CreateIntent(ctx, amountCents, s.currency)
	if err != nil {
		return nil, fmt.Errorf("payment provider: %w", err)
	}

	event := events.PaymentIntentCreatedEvent{
		IntentID:  intent.ID,
		UserEmail: userEmail,
		Amount:    amountCents,
		Currency:  s.currency,
	}
	if err := s.bus.Publish(ctx, events.PaymentIntentCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment intent event", "error", err, "intent_id", intent.ID)
	}

	return intent, nil
}
