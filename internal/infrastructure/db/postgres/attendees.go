package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

const pqForeignKeyViolation = "23503"

type AttendeeRepo struct {
	db *sql.DB
}

func NewAttendeeRepo(db *sql.DB) *AttendeeRepo { return &AttendeeRepo{db: db} }

func (r *AttendeeRepo) Upsert(ctx context.Context, a *domain.Attendee) error {
	err := r.db.QueryRowContext(ctx, upsertAttendeeSQL,
		a.EventID, a.UserID, int(a.Answer),
	).Scan(&a.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return domain.ErrNotFound("event not found")
	}
	return err
}

func (r *AttendeeRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, listAttendeesSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Attendee{}
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AttendeeRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error) {
	a, err := scanAttendee(r.db.QueryRowContext(ctx, getAttendeeSQL, eventID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("attendance not found")
	}
	return a, err
}

func scanAttendee(s rowScanner) (*domain.Attendee, error) {
	var (
		a      domain.Attendee
		answer int
	)
	if err := s.Scan(&a.ID, &a.EventID, &a.UserID, &answer); err != nil {
		return nil, err
	}
	a.Answer = domain.AttendeeAnswer(answer)
	if !a.Answer.Valid() {
		return nil, domain.ErrInvalidState("invalid answer in db")
	}
	return &a, nil
}
