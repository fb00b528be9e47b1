package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional notification emails.
type Service interface {
	SendAppointmentBooked(ctx context.Context, to, date, time string) error
	SendRequestResolved(ctx context.Context, to, name, status string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *smtpService) SendAppointmentBooked(_ context.Context, to, date, time string) error {
	body := fmt.Sprintf("A new appointment has been booked with you for %s at %s.", date, time)
	return s.send(to, "New appointment booked", body)
}

func (s *smtpService) SendRequestResolved(_ context.Context, to, name, status string) error {
	body := fmt.Sprintf("Hello %s, your doctor application has been %s.", name, status)
	return s.send(to, "Your doctor application was reviewed", body)
}
