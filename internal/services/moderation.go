package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"investorbooking/internal/domain"
)

type moderationService struct {
	slotRepo       domain.SlotRepository
	meetingRepo    domain.MeetingRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
	notifyTimeout  time.Duration
	logger         *slog.Logger
}

// NewModerationService creates the administrator's meeting workflow service.
func NewModerationService(
	slotRepo domain.SlotRepository,
	meetingRepo domain.MeetingRepository,
	emailService domain.EmailService,
	timeout time.Duration,
	notifyTimeout time.Duration,
	logger *slog.Logger,
) domain.ModerationService {
	return &moderationService{
		slotRepo:       slotRepo,
		meetingRepo:    meetingRepo,
		emailService:   emailService,
		contextTimeout: timeout,
		notifyTimeout:  notifyTimeout,
		logger:         logger,
	}
}

func (s *moderationService) ApproveMeeting(ctx context.Context, id string) (*domain.Meeting, []string, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.meetingRepo.Approve(opCtx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("approve meeting: %w", err)
	}
	meeting, err := s.meetingRepo.GetByID(opCtx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get approved meeting: %w", err)
	}

	// Approval is committed; the notice is best effort. A deleted slot does
	// not block the notice, it just goes out without the datetime.
	notice := &domain.ApprovalEmailData{
		Email: meeting.Email,
		Name:  meeting.Name,
	}
	if slot, err := s.slotRepo.GetByID(opCtx, meeting.SlotID); err == nil {
		notice.SlotDatetime = slot.Datetime
		notice.HasDatetime = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("slot lookup for approval notice failed", "meeting_id", id, "err", err)
	}

	var warnings []string
	notifyCtx, cancelNotify := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancelNotify()
	if err := s.emailService.SendApprovalNotice(notifyCtx, notice); err != nil {
		s.logger.Warn("approval email failed", "meeting_id", id, "err", err)
		warnings = append(warnings, "approval email could not be delivered")
	}
	return meeting, warnings, nil
}

func (s *moderationService) MarkComplete(ctx context.Context, id string) (*domain.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.meetingRepo.Complete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrMeetingNotApproved) {
			return nil, err
		}
		return nil, fmt.Errorf("complete meeting: %w", err)
	}
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get completed meeting: %w", err)
	}
	return meeting, nil
}

func (s *moderationService) ListPendingMeetings(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetings, err := s.meetingRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending meetings: %w", err)
	}
	if meetings == nil {
		meetings = []*domain.MeetingWithSlot{}
	}
	return meetings, nil
}

func (s *moderationService) ListAllMeetings(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetings, err := s.meetingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	if meetings == nil {
		meetings = []*domain.MeetingWithSlot{}
	}
	return meetings, nil
}
