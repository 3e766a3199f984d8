package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"investorbooking/internal/domain"
)

type bookingService struct {
	slotRepo       domain.SlotRepository
	meetingRepo    domain.MeetingRepository
	emailService   domain.EmailService
	adminEmail     string
	contextTimeout time.Duration
	notifyTimeout  time.Duration
	logger         *slog.Logger
}

// NewBookingService creates the requester-facing BookingService. adminEmail
// receives the new-booking alert.
func NewBookingService(
	slotRepo domain.SlotRepository,
	meetingRepo domain.MeetingRepository,
	emailService domain.EmailService,
	adminEmail string,
	timeout time.Duration,
	notifyTimeout time.Duration,
	logger *slog.Logger,
) domain.BookingService {
	return &bookingService{
		slotRepo:       slotRepo,
		meetingRepo:    meetingRepo,
		emailService:   emailService,
		adminEmail:     adminEmail,
		contextTimeout: timeout,
		notifyTimeout:  notifyTimeout,
		logger:         logger,
	}
}

func (s *bookingService) ListAvailableSlots(ctx context.Context) ([]*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slots, err := s.slotRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	if slots == nil {
		slots = []*domain.Slot{}
	}
	return slots, nil
}

func (s *bookingService) BookSlot(ctx context.Context, req domain.BookingRequest) (*domain.Meeting, []string, error) {
	amount, err := parseInvestmentAmount(req.InvestmentAmount)
	if err != nil {
		return nil, nil, err
	}
	// The requester selects a datetime, never a slot id.
	slotDatetime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.SelectedSlot))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: selected_slot must be an RFC 3339 datetime", domain.ErrInvalidInput)
	}

	now := time.Now()
	meeting := domain.NewMeeting(
		"", // slot id is assigned by the repository when the slot is claimed
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Phone),
		req.Message,
		amount,
		now, now,
	)

	bookCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.meetingRepo.Book(bookCtx, slotDatetime, meeting); err != nil {
		if err == domain.ErrSlotUnavailable {
			return nil, nil, domain.ErrSlotUnavailable
		}
		return nil, nil, fmt.Errorf("book slot: %w", err)
	}

	// The booking is committed; notifications are best effort from here on.
	// They run on their own timeout, detached from the request context, so a
	// disconnecting requester or a slow provider cannot unwind the booking.
	warnings := s.notifyBooked(meeting, slotDatetime)
	return meeting, warnings, nil
}

func (s *bookingService) notifyBooked(meeting *domain.Meeting, slotDatetime time.Time) []string {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	var warnings []string
	confirmation := &domain.BookingConfirmationEmailData{
		Email:        meeting.Email,
		Name:         meeting.Name,
		SlotDatetime: slotDatetime,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, confirmation); err != nil {
		s.logger.Warn("booking confirmation email failed", "meeting_id", meeting.ID, "err", err)
		warnings = append(warnings, "confirmation email could not be delivered")
	}

	if s.adminEmail == "" {
		return warnings
	}
	alert := &domain.AdminAlertEmailData{
		Email:            s.adminEmail,
		RequesterName:    meeting.Name,
		RequesterEmail:   meeting.Email,
		RequesterPhone:   meeting.Phone,
		InvestmentAmount: meeting.InvestmentAmount,
		Message:          meeting.Message,
		SlotDatetime:     slotDatetime,
	}
	if err := s.emailService.SendAdminAlert(ctx, alert); err != nil {
		s.logger.Warn("admin alert email failed", "meeting_id", meeting.ID, "err", err)
		warnings = append(warnings, "administrator alert could not be delivered")
	}
	return warnings
}

func parseInvestmentAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: investment_amount must be a number", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: investment_amount must be positive", domain.ErrInvalidInput)
	}
	return amount, nil
}
