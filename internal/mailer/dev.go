package mailer

import (
	"time"

	"github.com/medinova/medinova-api/pkg/logger"
)

// DevMailer logs email instead of sending it. Used when EMAIL_DEV_MODE is on
// or MailerSend is not configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendBookingConfirmation(toEmail, toName, testTitle string, bookingDate time.Time) error {
	logger.Info("DEV MAIL: booking confirmation",
		"to", toEmail,
		"name", toName,
		"test", testTitle,
		"date", bookingDate.Format(time.RFC3339),
	)
	return nil
}
