package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/medinova/medinova-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	UserRegistered       = "user.registered"
	BannerActivated      = "banner.activated"
	BookingCreated       = "booking.created"
	BookingCanceled      = "booking.canceled"
	PaymentIntentCreated = "payment.intent.created"
)

// Event payloads
type UserRegisteredEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BannerActivatedEvent struct {
	BannerID    int64     `json:"banner_id"`
	ActivatedAt time.Time `json:"activated_at"`
}

type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	UserEmail   string    `json:"user_email"`
	TestID      int64     `json:"test_id"`
	BookingDate time.Time `json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingCanceledEvent struct {
	BookingID  int64     `json:"booking_id"`
	UserEmail  string    `json:"user_email"`
	TestID     int64     `json:"test_id"`
	CanceledAt time.Time `json:"canceled_at"`
}

type PaymentIntentCreatedEvent struct {
	IntentID  string `json:"intent_id"`
	UserEmail string `json:"user_email"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
