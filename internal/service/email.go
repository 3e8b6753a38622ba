package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"equiprent-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, email, name, equipmentName, contractNo string, totalCost float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Reservation confirmed - %s", contractNo))

	body := fmt.Sprintf("Hello %s,\n\nYour reservation of %s has been received.\n\nContract number: %s\nTotal cost: %.2f\n\nBest regards,\nThe Rental Team", name, equipmentName, contractNo, totalCost)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func (s *emailService) SendReservationStatusNotification(ctx context.Context, email, name, contractNo string, status domain.ReservationStatus) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Reservation update - %s", contractNo))

	body := fmt.Sprintf("Hello %s,\n\nThe status of reservation %s is now: %s.\n\nBest regards,\nThe Rental Team", name, contractNo, status)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send status notification: %w", err)
	}
	return nil
}
