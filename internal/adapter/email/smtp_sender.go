package email

import (
	"fmt"

	"github.com/Abdulsamad25/apartment-rentals/internal/app/config"
	"gopkg.in/gomail.v2"
)

// Sender delivers booking notifications over SMTP.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) SendBookingConfirmed(toEmail, apartmentName, reference string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Booking Confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your booking for '%s' has been confirmed.\nPayment reference: %s\n", apartmentName, reference))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
