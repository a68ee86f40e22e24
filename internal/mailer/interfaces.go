package mailer

import "time"

// Service sends transactional email to patients.
type Service interface {
	SendBookingConfirmation(toEmail, toName, testTitle string, bookingDate time.Time) error
}
