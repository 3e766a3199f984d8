package services

import (
	"context"
	"fmt"
	"log"

	"investorbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendBookingConfirmation sends the requester's confirmation using the "booking_confirmation" template.
func (s *emailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("booking confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("booking_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render booking_confirmation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	log.Printf("[EMAIL] Booking confirmation sent to %s", data.Email)
	return nil
}

// SendAdminAlert sends the new-booking alert using the "admin_alert" template.
func (s *emailService) SendAdminAlert(ctx context.Context, data *domain.AdminAlertEmailData) error {
	if data == nil {
		return fmt.Errorf("admin alert data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("admin_alert", data)
	if err != nil {
		return fmt.Errorf("failed to render admin_alert template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send admin alert: %w", err)
	}
	log.Printf("[EMAIL] Admin alert sent to %s", data.Email)
	return nil
}

// SendApprovalNotice sends the approval notice using the "booking_approved" template.
func (s *emailService) SendApprovalNotice(ctx context.Context, data *domain.ApprovalEmailData) error {
	if data == nil {
		return fmt.Errorf("approval notice data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("booking_approved", data)
	if err != nil {
		return fmt.Errorf("failed to render booking_approved template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send approval notice: %w", err)
	}
	log.Printf("[EMAIL] Approval notice sent to %s", data.Email)
	return nil
}
