package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSlotUnavailable is returned when a booking targets a datetime with no
// unbooked slot: either no slot exists at that instant or it is already taken.
var ErrSlotUnavailable = errors.New("slot unavailable")

// Slot represents a bookable consultation time offered by the administrator.
// A slot is a single point in time, not a range.
// swagger:model Slot
type Slot struct {
	ID        string    `json:"id"`
	Datetime  time.Time `json:"datetime"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSlot returns a new unbooked Slot. ID is typically set by the repository on create.
func NewSlot(datetime, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		Datetime:  datetime,
		IsBooked:  false,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SlotRepository defines the interface for slot storage.
type SlotRepository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	// Delete removes the slot if present. Deleting an absent slot is not an
	// error, and meetings referencing the slot are left in place.
	Delete(ctx context.Context, id string) error
	// ListAvailable returns unbooked slots in creation order.
	ListAvailable(ctx context.Context) ([]*Slot, error)
	ListAll(ctx context.Context) ([]*Slot, error)
}

// ScheduleService defines the administrator's slot inventory operations.
type ScheduleService interface {
	// CreateSlot parses datetime as RFC 3339 and creates an unbooked slot.
	// Duplicate datetimes are allowed; offering two slots at the same instant
	// is administrator discretion.
	CreateSlot(ctx context.Context, datetime string) (*Slot, error)
	DeleteSlot(ctx context.Context, id string) error
	ListSlots(ctx context.Context) ([]*Slot, error)
}
