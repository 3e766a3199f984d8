package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an operation targets a meeting or slot
	// that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed caller input, such as an
	// unparsable datetime or a non-numeric investment amount.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMeetingNotApproved is returned when a meeting is marked complete
	// before it has been approved. The lifecycle is strictly
	// pending -> approved -> completed.
	ErrMeetingNotApproved = errors.New("meeting not approved")
)

// Meeting is a booking request against a slot, carrying the requester's
// details and an approval/completion lifecycle. SlotID is immutable after
// creation; the approval and completion flags only ever move forward.
// swagger:model Meeting
type Meeting struct {
	ID               string    `json:"id"`
	SlotID           string    `json:"slot_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	InvestmentAmount float64   `json:"investment_amount"`
	Message          string    `json:"message"`
	IsApproved       bool      `json:"is_approved"`
	IsCompleted      bool      `json:"is_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewMeeting returns a pending Meeting for the given slot. ID is typically
// set by the repository on create.
func NewMeeting(slotID, name, email, phone, message string, amount float64, createdAt, updatedAt time.Time) *Meeting {
	return &Meeting{
		SlotID:           slotID,
		Name:             name,
		Email:            email,
		Phone:            phone,
		InvestmentAmount: amount,
		Message:          message,
		IsApproved:       false,
		IsCompleted:      false,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// MeetingWithSlot bundles a meeting with the datetime of its slot.
// SlotDatetime is nil when the slot has been deleted; readers treat that as
// "datetime unknown" rather than an error.
type MeetingWithSlot struct {
	Meeting      *Meeting   `json:"meeting"`
	SlotDatetime *time.Time `json:"slot_datetime"`
}

// MeetingRepository defines the interface for meeting storage.
type MeetingRepository interface {
	// Book atomically claims an unbooked slot whose datetime equals
	// slotDatetime and creates the meeting against it. When several slots
	// share the datetime, the oldest available one is claimed. Returns
	// ErrSlotUnavailable when no unbooked slot matches; the stored state is
	// unchanged in that case.
	Book(ctx context.Context, slotDatetime time.Time, meeting *Meeting) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	// Approve sets is_approved. Approving an already-approved meeting is a
	// no-op, not an error. Returns ErrNotFound for an unknown id.
	Approve(ctx context.Context, id string) error
	// Complete sets is_completed, which requires the meeting to be approved.
	// Returns ErrMeetingNotApproved otherwise and ErrNotFound for an unknown id.
	Complete(ctx context.Context, id string) error
	// ListPending returns unapproved meetings joined with their slot
	// datetime, ascending by that datetime. Meetings whose slot is missing
	// sort first and carry a nil SlotDatetime.
	ListPending(ctx context.Context) ([]*MeetingWithSlot, error)
	ListAll(ctx context.Context) ([]*MeetingWithSlot, error)
}

// BookingRequest is the requester form submission. SelectedSlot and
// InvestmentAmount arrive as strings; the requester only ever sees slot
// datetimes, never slot ids.
type BookingRequest struct {
	Name             string
	Email            string
	Phone            string
	InvestmentAmount string
	Message          string
	SelectedSlot     string
}

// BookingService defines the requester-facing engine operations.
type BookingService interface {
	ListAvailableSlots(ctx context.Context) ([]*Slot, error)
	// BookSlot books the slot matching the request's datetime and triggers
	// confirmation and admin-alert emails. Delivery failures are returned as
	// warnings alongside the created meeting; they never fail the booking.
	BookSlot(ctx context.Context, req BookingRequest) (*Meeting, []string, error)
}

// ModerationService defines the administrator's meeting workflow.
type ModerationService interface {
	// ApproveMeeting approves the meeting and sends the requester an
	// approval email. Idempotent: re-approving succeeds without effect.
	// Delivery failures are returned as warnings.
	ApproveMeeting(ctx context.Context, id string) (*Meeting, []string, error)
	// MarkComplete marks an approved meeting as completed.
	MarkComplete(ctx context.Context, id string) (*Meeting, error)
	ListPendingMeetings(ctx context.Context) ([]*MeetingWithSlot, error)
	ListAllMeetings(ctx context.Context) ([]*MeetingWithSlot, error)
}
