package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
// The context bounds the send; a slow provider must not stall the caller
// beyond its notification timeout.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmationEmailData holds data for the requester's confirmation email.
type BookingConfirmationEmailData struct {
	Email        string
	Name         string
	SlotDatetime time.Time
}

// AdminAlertEmailData holds data for the new-booking alert to the administrator.
type AdminAlertEmailData struct {
	Email            string // recipient (administrator)
	RequesterName    string
	RequesterEmail   string
	RequesterPhone   string
	InvestmentAmount float64
	Message          string
	SlotDatetime     time.Time
}

// ApprovalEmailData holds data for the approval notice to the requester.
// HasDatetime is false when the meeting's slot has been deleted; the notice
// is still sent, just without the datetime.
type ApprovalEmailData struct {
	Email        string
	Name         string
	SlotDatetime time.Time
	HasDatetime  bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
	SendAdminAlert(ctx context.Context, data *AdminAlertEmailData) error
	SendApprovalNotice(ctx context.Context, data *ApprovalEmailData) error
}
