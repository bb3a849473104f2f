// Package notifier sends the side-channel emails of the system: OTP codes,
// registration confirmations, interest-match alerts, attendance QR codes and
// scheduled reminders. Every send is best effort from the caller's point of
// view; failures are returned so callers can log them, never to roll back the
// operation that triggered them.
package notifier

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/eventfesta/eventfesta-api/internal/config"
	"github.com/eventfesta/eventfesta-api/internal/domain"
)

type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	adminBCC string
}

func NewMailer(conf *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:     conf.From,
		adminBCC: conf.AdminBCC,
	}
}

func (m *Mailer) SendOtpEmail(to, otp string) error {
	msg := m.newMessage(to, "Your EventFesta verification code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your one-time verification code is %v.\n\nIt expires in 5 minutes.", otp))

	return m.send(msg)
}

func (m *Mailer) SendWelcomeEmail(to, name string) error {
	msg := m.newMessage(to, "Welcome to EventFesta - Registration Successful!")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %v,\n\nYour EventFesta account has been created. Happy event hunting!", name))

	return m.send(msg)
}

func (m *Mailer) SendTagMatchEmail(to, name string, event domain.Event, matchedTags []string) error {
	msg := m.newMessage(to, fmt.Sprintf("New event matching your interests: %v", event.Title))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %v,\n\nA new event \"%v\" on %v at %v matches your interests: %v.\n\nSeats are limited, register soon!",
		name,
		event.Title,
		event.EventDate.Format("Monday, January 02, 2006"),
		event.Location,
		strings.Join(matchedTags, ", ")))

	return m.send(msg)
}

// SendQRWithEventDetails attaches the QR PNG encoding the attendance code.
func (m *Mailer) SendQRWithEventDetails(to, name string, event domain.Event, qrPNG []byte) error {
	msg := m.newMessage(to, fmt.Sprintf("You're registered for %v!", event.Title))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %v,\n\nYour registration for \"%v\" is confirmed.\nDate: %v\nLocation: %v\n\nPresent the attached QR code at the venue to check in.",
		name,
		event.Title,
		event.EventDate.Format("Monday, January 02, 2006"),
		event.Location))
	msg.Attach("attendance-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qrPNG)
		return err
	}))

	return m.send(msg)
}

// SendAttendanceQR encodes the attendance code and emails it with the event
// details.
func (m *Mailer) SendAttendanceQR(to, name string, event domain.Event, attendanceCode string) error {
	png, err := EncodeAttendanceQR(attendanceCode)
	if err != nil {
		return fmt.Errorf("notifier.EncodeAttendanceQR -> %w", err)
	}

	return m.SendQRWithEventDetails(to, name, event, png)
}

// SendEventReminder sends one reminder blind-copied to every registrant.
func (m *Mailer) SendEventReminder(event domain.Event, recipientEmails []string) error {
	if len(recipientEmails) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("Bcc", recipientEmails...)
	msg.SetHeader("Subject", fmt.Sprintf("Event Reminder: %v - Tomorrow!", event.Title))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Reminder: \"%v\" starts on %v at %v.\n\nDon't forget your attendance QR code!",
		event.Title,
		event.EventDate.Format("Monday, January 02, 2006 15:04"),
		event.Location))

	return m.send(msg)
}

func (m *Mailer) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	if m.adminBCC != "" {
		msg.SetHeader("Bcc", m.adminBCC)
	}
	msg.SetHeader("Subject", subject)

	return msg
}

func (m *Mailer) send(msg *gomail.Message) error {
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dialer.DialAndSend -> %w", err)
	}

	return nil
}
