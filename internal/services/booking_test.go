package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"investorbooking/internal/domain"
)

type mockSlotRepository struct {
	slots     map[string]*domain.Slot
	available []*domain.Slot
	created   []*domain.Slot
	deleted   []string
	err       error
}

func (m *mockSlotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	if m.err != nil {
		return m.err
	}
	slot.ID = "slot-created"
	m.created = append(m.created, slot)
	return nil
}

func (m *mockSlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	slot, ok := m.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slot, nil
}

func (m *mockSlotRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSlotRepository) ListAvailable(ctx context.Context) ([]*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.available, nil
}

func (m *mockSlotRepository) ListAll(ctx context.Context) ([]*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.available, nil
}

type mockMeetingRepository struct {
	meetings    map[string]*domain.Meeting
	pending     []*domain.MeetingWithSlot
	all         []*domain.MeetingWithSlot
	booked      []*domain.Meeting
	bookErr     error
	approveErr  error
	completeErr error
	err         error
}

func (m *mockMeetingRepository) Book(ctx context.Context, slotDatetime time.Time, meeting *domain.Meeting) error {
	if m.bookErr != nil {
		return m.bookErr
	}
	meeting.ID = "meeting-booked"
	meeting.SlotID = "slot-claimed"
	m.booked = append(m.booked, meeting)
	return nil
}

func (m *mockMeetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	if m.err != nil {
		return nil, m.err
	}
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return meeting, nil
}

func (m *mockMeetingRepository) Approve(ctx context.Context, id string) error {
	if m.approveErr != nil {
		return m.approveErr
	}
	if _, ok := m.meetings[id]; !ok {
		return domain.ErrNotFound
	}
	m.meetings[id].IsApproved = true
	return nil
}

func (m *mockMeetingRepository) Complete(ctx context.Context, id string) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	meeting, ok := m.meetings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !meeting.IsApproved {
		return domain.ErrMeetingNotApproved
	}
	meeting.IsCompleted = true
	return nil
}

func (m *mockMeetingRepository) ListPending(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pending, nil
}

func (m *mockMeetingRepository) ListAll(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.all, nil
}

type mockEmailService struct {
	confirmations int
	alerts        int
	approvals     int
	confirmErr    error
	alertErr      error
	approvalErr   error
}

func (m *mockEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	m.confirmations++
	return m.confirmErr
}

func (m *mockEmailService) SendAdminAlert(ctx context.Context, data *domain.AdminAlertEmailData) error {
	m.alerts++
	return m.alertErr
}

func (m *mockEmailService) SendApprovalNotice(ctx context.Context, data *domain.ApprovalEmailData) error {
	m.approvals++
	return m.approvalErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBookingRequest() domain.BookingRequest {
	return domain.BookingRequest{
		Name:             "Ada Lovelace",
		Email:            "ada@example.com",
		Phone:            "+44 20 7946 0000",
		InvestmentAmount: "25000",
		Message:          "Interested in the seed round.",
		SelectedSlot:     "2026-09-15T14:00:00Z",
	}
}

func newTestBookingService(slotRepo *mockSlotRepository, meetingRepo *mockMeetingRepository, emails *mockEmailService) domain.BookingService {
	return NewBookingService(slotRepo, meetingRepo, emails, "owner@example.com", 2*time.Second, 2*time.Second, testLogger())
}

func TestBookingService_BookSlot(t *testing.T) {
	slotRepo := &mockSlotRepository{}
	meetingRepo := &mockMeetingRepository{}
	emails := &mockEmailService{}
	svc := newTestBookingService(slotRepo, meetingRepo, emails)

	meeting, warnings, err := svc.BookSlot(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meeting == nil || meeting.ID == "" {
		t.Fatalf("expected a created meeting with an id, got %+v", meeting)
	}
	if meeting.SlotID == "" {
		t.Fatalf("expected the claimed slot id to be set on the meeting")
	}
	if meeting.IsApproved || meeting.IsCompleted {
		t.Fatalf("new meeting must start pending, got approved=%v completed=%v", meeting.IsApproved, meeting.IsCompleted)
	}
	if meeting.InvestmentAmount != 25000 {
		t.Fatalf("expected investment amount 25000, got %v", meeting.InvestmentAmount)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if emails.confirmations != 1 || emails.alerts != 1 {
		t.Fatalf("expected 1 confirmation and 1 alert, got %d and %d", emails.confirmations, emails.alerts)
	}
}

func TestBookingService_BookSlot_Unavailable(t *testing.T) {
	slotRepo := &mockSlotRepository{}
	meetingRepo := &mockMeetingRepository{bookErr: domain.ErrSlotUnavailable}
	emails := &mockEmailService{}
	svc := newTestBookingService(slotRepo, meetingRepo, emails)

	_, _, err := svc.BookSlot(context.Background(), validBookingRequest())
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if emails.confirmations != 0 || emails.alerts != 0 {
		t.Fatalf("no emails should go out for a failed booking, got %d confirmations and %d alerts", emails.confirmations, emails.alerts)
	}
}

func TestBookingService_BookSlot_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.BookingRequest)
	}{
		{
			name:   "non-numeric amount",
			mutate: func(r *domain.BookingRequest) { r.InvestmentAmount = "a lot" },
		},
		{
			name:   "zero amount",
			mutate: func(r *domain.BookingRequest) { r.InvestmentAmount = "0" },
		},
		{
			name:   "negative amount",
			mutate: func(r *domain.BookingRequest) { r.InvestmentAmount = "-100" },
		},
		{
			name:   "unparsable datetime",
			mutate: func(r *domain.BookingRequest) { r.SelectedSlot = "next tuesday" },
		},
		{
			name:   "empty datetime",
			mutate: func(r *domain.BookingRequest) { r.SelectedSlot = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meetingRepo := &mockMeetingRepository{}
			svc := newTestBookingService(&mockSlotRepository{}, meetingRepo, &mockEmailService{})

			req := validBookingRequest()
			tt.mutate(&req)

			_, _, err := svc.BookSlot(context.Background(), req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(meetingRepo.booked) != 0 {
				t.Fatalf("invalid input must not reach the repository")
			}
		})
	}
}

func TestBookingService_BookSlot_EmailFailuresBecomeWarnings(t *testing.T) {
	slotRepo := &mockSlotRepository{}
	meetingRepo := &mockMeetingRepository{}
	emails := &mockEmailService{
		confirmErr: errors.New("smtp unreachable"),
		alertErr:   errors.New("smtp unreachable"),
	}
	svc := newTestBookingService(slotRepo, meetingRepo, emails)

	meeting, warnings, err := svc.BookSlot(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("email failures must not fail the booking, got %v", err)
	}
	if meeting == nil {
		t.Fatalf("expected a created meeting despite email failures")
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if len(meetingRepo.booked) != 1 {
		t.Fatalf("booking must be persisted exactly once")
	}
}

func TestBookingService_BookSlot_NoAdminAlertWithoutAdminEmail(t *testing.T) {
	emails := &mockEmailService{}
	svc := NewBookingService(&mockSlotRepository{}, &mockMeetingRepository{}, emails, "", 2*time.Second, 2*time.Second, testLogger())

	_, warnings, err := svc.BookSlot(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if emails.alerts != 0 {
		t.Fatalf("no admin alert should be sent without an admin email configured")
	}
}

func TestBookingService_ListAvailableSlots(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		slotRepo  *mockSlotRepository
		wantCount int
		wantErr   bool
	}{
		{
			name:      "nil from repo becomes empty slice",
			slotRepo:  &mockSlotRepository{},
			wantCount: 0,
		},
		{
			name: "returns available slots",
			slotRepo: &mockSlotRepository{available: []*domain.Slot{
				{ID: "s1", Datetime: now.Add(24 * time.Hour)},
				{ID: "s2", Datetime: now.Add(48 * time.Hour)},
			}},
			wantCount: 2,
		},
		{
			name:     "repo error",
			slotRepo: &mockSlotRepository{err: errors.New("db error")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBookingService(tt.slotRepo, &mockMeetingRepository{}, &mockEmailService{})

			got, err := svc.ListAvailableSlots(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got err=%v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if got == nil {
				t.Fatalf("expected a non-nil slice")
			}
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d slots, got %d", tt.wantCount, len(got))
			}
		})
	}
}
