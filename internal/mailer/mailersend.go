package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendBookingConfirmation(toEmail, toName, testTitle string, bookingDate time.Time) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your MediNova booking is confirmed"
	when := bookingDate.Format("Monday, 2 January 2006 at 15:04")
	html := fmt.Sprintf(`
		<h2>Booking confirmed</h2>
		<p>Hi %s,</p>
		<p>Your booking for <strong>%s</strong> on %s is confirmed.</p>
		<p>Please arrive 15 minutes early and bring a photo ID.</p>
	`, toName, testTitle, when)
	text := fmt.Sprintf("Your booking for %s on %s is confirmed.", testTitle, when)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
