package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"investorbooking/internal/domain"
)

type scheduleService struct {
	slotRepo       domain.SlotRepository
	contextTimeout time.Duration
}

// NewScheduleService creates the administrator's slot inventory service.
func NewScheduleService(slotRepo domain.SlotRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		slotRepo:       slotRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) CreateSlot(ctx context.Context, datetime string) (*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dt, err := time.Parse(time.RFC3339, strings.TrimSpace(datetime))
	if err != nil {
		return nil, fmt.Errorf("%w: datetime must be an RFC 3339 datetime", domain.ErrInvalidInput)
	}

	now := time.Now()
	slot := domain.NewSlot(dt, now, now)
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

func (s *scheduleService) DeleteSlot(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (s *scheduleService) ListSlots(ctx context.Context) ([]*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slots, err := s.slotRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	if slots == nil {
		slots = []*domain.Slot{}
	}
	return slots, nil
}
