package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"investorbooking/internal/domain"
)

type meetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) domain.MeetingRepository {
	return &meetingRepository{
		DB: db,
	}
}

// Book claims the oldest unbooked slot at the given datetime and inserts the
// meeting in the same transaction. The conditional UPDATE is what makes two
// concurrent bookings of the last slot impossible: only one transaction gets
// a row back, the other sees no rows and fails with ErrSlotUnavailable. The
// UNIQUE index on meetings(slot_id) backs this up at the schema level.
func (r *meetingRepository) Book(ctx context.Context, slotDatetime time.Time, m *domain.Meeting) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	claim := `
		UPDATE slots
		SET is_booked = TRUE, updated_at = $2
		WHERE id = (
			SELECT id FROM slots
			WHERE datetime = $1 AND is_booked = FALSE
			ORDER BY created_at, id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id
	`
	var slotID string
	err = tx.QueryRowContext(ctx, claim, slotDatetime, m.UpdatedAt).Scan(&slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSlotUnavailable
		}
		return err
	}
	m.SlotID = slotID

	insert := `
		INSERT INTO meetings (slot_id, name, email, phone, investment_amount, message, is_approved, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insert,
		m.SlotID, m.Name, m.Email, m.Phone, m.InvestmentAmount, m.Message,
		m.IsApproved, m.IsCompleted, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := `
		SELECT id, slot_id, name, email, phone, investment_amount, message, is_approved, is_completed, created_at, updated_at
		FROM meetings
		WHERE id = $1
	`
	m := &domain.Meeting{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.SlotID, &m.Name, &m.Email, &m.Phone, &m.InvestmentAmount,
		&m.Message, &m.IsApproved, &m.IsCompleted, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Approve only ever sets the flag; an already-approved meeting is updated to
// the same value, which keeps the call idempotent without a read first.
func (r *meetingRepository) Approve(ctx context.Context, id string) error {
	query := `UPDATE meetings SET is_approved = TRUE, updated_at = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepository) Complete(ctx context.Context, id string) error {
	query := `UPDATE meetings SET is_completed = TRUE, updated_at = $2 WHERE id = $1 AND is_approved = TRUE`
	res, err := r.DB.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// No row updated: the meeting is either missing or not yet approved.
	var approved bool
	err = r.DB.QueryRowContext(ctx, `SELECT is_approved FROM meetings WHERE id = $1`, id).Scan(&approved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.ErrMeetingNotApproved
}

func (r *meetingRepository) ListPending(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	query := `
		SELECT m.id, m.slot_id, m.name, m.email, m.phone, m.investment_amount, m.message,
		       m.is_approved, m.is_completed, m.created_at, m.updated_at, s.datetime
		FROM meetings m
		LEFT JOIN slots s ON s.id = m.slot_id
		WHERE m.is_approved = FALSE
		ORDER BY s.datetime ASC NULLS FIRST, m.created_at
	`
	return r.listJoined(ctx, query)
}

func (r *meetingRepository) ListAll(ctx context.Context) ([]*domain.MeetingWithSlot, error) {
	query := `
		SELECT m.id, m.slot_id, m.name, m.email, m.phone, m.investment_amount, m.message,
		       m.is_approved, m.is_completed, m.created_at, m.updated_at, s.datetime
		FROM meetings m
		LEFT JOIN slots s ON s.id = m.slot_id
		ORDER BY s.datetime ASC NULLS FIRST, m.created_at
	`
	return r.listJoined(ctx, query)
}

func (r *meetingRepository) listJoined(ctx context.Context, query string) ([]*domain.MeetingWithSlot, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MeetingWithSlot
	for rows.Next() {
		m := &domain.Meeting{}
		var dtNull sql.NullTime
		err := rows.Scan(
			&m.ID, &m.SlotID, &m.Name, &m.Email, &m.Phone, &m.InvestmentAmount,
			&m.Message, &m.IsApproved, &m.IsCompleted, &m.CreatedAt, &m.UpdatedAt,
			&dtNull,
		)
		if err != nil {
			return nil, err
		}
		ms := &domain.MeetingWithSlot{Meeting: m}
		if dtNull.Valid {
			ms.SlotDatetime = &dtNull.Time
		}
		out = append(out, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
