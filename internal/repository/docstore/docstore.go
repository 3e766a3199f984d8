// Package docstore persists the whole dataset as a single JSON document
// guarded by one mutex. Every mutation is a re-read, modify, re-write of the
// full document; the write replaces the file atomically via rename, so a
// failed write leaves the previous state on disk.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"investorbooking/internal/domain"
)

// ErrCorrupt is returned when the store file exists but cannot be parsed.
// A missing file is a cold start and yields an empty dataset instead.
var ErrCorrupt = errors.New("store file corrupt")

type document struct {
	Slots    []*domain.Slot    `json:"slots"`
	Meetings []*domain.Meeting `json:"meetings"`
}

// Store is the shared document handle. Slots() and Meetings() expose the
// repository ports; both serialize through the same lock.
type Store struct {
	path string
	mu   chan struct{} // buffered size 1, used as a mutex that respects ctx
}

func NewStore(path string) *Store {
	mu := make(chan struct{}, 1)
	return &Store{path: path, mu: mu}
}

// Slots returns the slot repository view of the store.
func (s *Store) Slots() domain.SlotRepository { return &slotRepo{s} }

// Meetings returns the meeting repository view of the store.
func (s *Store) Meetings() domain.MeetingRepository { return &meetingRepo{s} }

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() { <-s.mu }

func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	doc := &document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return doc, nil
}

func (s *Store) save(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

type slotRepo struct {
	store *Store
}

func (r *slotRepo) Create(ctx context.Context, slot *domain.Slot) error {
	if err := r.store.lock(ctx); err != nil {
		return err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	slot.ID = uuid.NewString()
	doc.Slots = append(doc.Slots, slot)
	return r.store.save(doc)
}

func (r *slotRepo) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	if err := r.store.lock(ctx); err != nil {
		return nil, err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for _, s := range doc.Slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *slotRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.lock(ctx); err != nil {
		return err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	kept := doc.Slots[:0]
	removed := false
	for _, s := range doc.Slots {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		// Deleting an absent slot is a no-op, not an error.
		return nil
	}
	doc.Slots = kept
	return r.store.save(doc)
}

func (r *slotRepo) ListAvailable(ctx context.Context) ([]*domain.Slot, error) {
	return r.list(ctx, false)
}

func (r *slotRepo) ListAll(ctx context.Context) ([]*domain.Slot, error) {
	return r.list(ctx, true)
}

func (r *slotRepo) list(ctx context.Context, includeBooked bool) ([]*domain.Slot, error) {
	if err := r.store.lock(ctx); err != nil {
		return nil, err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	// Document order is creation order.
	var out []*domain.Slot
	for _, s := range doc.Slots {
		if includeBooked || !s.IsBooked {
			out = append(out, s)
		}
	}
	return out, nil
}

type meetingRepo struct {
	store *Store
}

func (r *meetingRepo) Book(ctx context.Context, slotDatetime time.Time, m *domain.Meeting) error {
	if err := r.store.lock(ctx); err != nil {
		return err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	// Oldest available slot at the requested instant wins. Matching is by
	// datetime value; the requester never sees slot ids.
	var slot *domain.Slot
	for _, s := range doc.Slots {
		if !s.IsBooked && s.Datetime.Equal(slotDatetime) {
			slot = s
			break
		}
	}
	if slot == nil {
		return domain.ErrSlotUnavailable
	}
	slot.IsBooked = true
	slot.UpdatedAt = m.UpdatedAt
	m.ID = uuid.NewString()
	m.SlotID = slot.ID
	doc.Meetings = append(doc.Meetings, m)
	return r.store.save(doc)
}

func (r *meetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	if err := r.store.lock(ctx); err != nil {
		return nil, err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for _, m := range doc.Meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *meetingRepo) Approve(ctx context.Context, id string) error {
	return r.update(ctx, id, func(m *domain.Meeting) error {
		if m.IsApproved {
			// Re-approving is a no-op.
			return nil
		}
		m.IsApproved = true
		m.UpdatedAt = time.Now()
		return nil
	})
}

func (r *meetingRepo) Complete(ctx context.Context, id string) error {
	return r.update(ctx, id, func(m *domain.Meeting) error {
		if !m.IsApproved {
			return domain.ErrMeetingNotApproved
		}
		if m.IsCompleted {
			return nil
		}
		m.IsCompleted = true
		m.UpdatedAt = time.Now()
		return nil
	})
}

func (r *meetingRepo) update(ctx context.Context, id string, fn func(*domain.Meeting) error) error {
	if err := r.store.lock(ctx); err != nil {
		return err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	for _, m := range doc.Meetings {
		if m.ID == id {
			if err := fn(m); err != nil {
				return err
			}
			return r.store.save(doc)
		}
	}
	return domain.ErrNotFound
}

func (r *meetingRepo) ListPending(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	return r.listJoined(ctx, func(m *domain.Meeting) bool { return !m.IsApproved })
}

func (r *meetingRepo) ListAll(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	return r.listJoined(ctx, func(m *domain.Meeting) bool { return true })
}

func (r *meetingRepo) listJoined(ctx context.Context, keep func(*domain.Meeting) bool) ([]*domain.MeetingWithSlot, error) {
	if err := r.store.lock(ctx); err != nil {
		return nil, err
	}
	defer r.store.unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	slotsByID := make(map[string]*domain.Slot, len(doc.Slots))
	for _, s := range doc.Slots {
		slotsByID[s.ID] = s
	}
	var out []*domain.MeetingWithSlot
	for _, m := range doc.Meetings {
		if !keep(m) {
			continue
		}
		ms := &domain.MeetingWithSlot{Meeting: m}
		if s, ok := slotsByID[m.SlotID]; ok {
			dt := s.Datetime
			ms.SlotDatetime = &dt
		}
		out = append(out, ms)
	}
	// Ascending by slot datetime; meetings with a deleted slot sort first.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SlotDatetime, out[j].SlotDatetime
		switch {
		case a == nil && b == nil:
			return out[i].Meeting.CreatedAt.Before(out[j].Meeting.CreatedAt)
		case a == nil:
			return true
		case b == nil:
			return false
		case a.Equal(*b):
			return out[i].Meeting.CreatedAt.Before(out[j].Meeting.CreatedAt)
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}
