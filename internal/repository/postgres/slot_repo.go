package postgres

import (
	"context"
	"database/sql"
	"errors"

	"investorbooking/internal/domain"
)

type slotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{
		DB: db,
	}
}

func (r *slotRepository) Create(ctx context.Context, s *domain.Slot) error {
	query := `
		INSERT INTO slots (datetime, is_booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Datetime, s.IsBooked, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `
		SELECT id, datetime, is_booked, created_at, updated_at
		FROM slots
		WHERE id = $1
	`
	s := &domain.Slot{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Datetime, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Delete intentionally does not cascade to meetings; a dangling slot_id is
// tolerated and readers fall back to "datetime unknown".
func (r *slotRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM slots WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *slotRepository) ListAvailable(ctx context.Context) ([]*domain.Slot, error) {
	query := `
		SELECT id, datetime, is_booked, created_at, updated_at
		FROM slots
		WHERE is_booked = FALSE
		ORDER BY created_at, id
	`
	return r.list(ctx, query)
}

func (r *slotRepository) ListAll(ctx context.Context) ([]*domain.Slot, error) {
	query := `
		SELECT id, datetime, is_booked, created_at, updated_at
		FROM slots
		ORDER BY created_at, id
	`
	return r.list(ctx, query)
}

func (r *slotRepository) list(ctx context.Context, query string) ([]*domain.Slot, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.Slot
	for rows.Next() {
		s := &domain.Slot{}
		if err := rows.Scan(&s.ID, &s.Datetime, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}
