package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner, extra ...any) (*domain.Event, error) {
	var e domain.Event
	dest := append([]any{
		&e.ID, &e.Name, &e.Description, &e.Address, &e.When, &e.OrganizerID,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	e.When = e.When.UTC()
	return &e, nil
}

func (r *Repo) Fetch(ctx context.Context, q query.Query, w pagination.Window) ([]*domain.Event, error) {
	stmt, args, err := compileSelect(q, &w)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggs := q.Aggregations()
	counts := make([]int, len(aggs))
	extra := make([]any, len(aggs))
	for i := range counts {
		extra[i] = &counts[i]
	}

	out := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows, extra...)
		if err != nil {
			return nil, err
		}
		for i, a := range aggs {
			a.Assign(e, counts[i])
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context, q query.Query) (int, error) {
	stmt, args, err := compileCount(q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) First(ctx context.Context, q query.Query) (*domain.Event, error) {
	rows, err := r.Fetch(ctx, q, pagination.Window{Offset: 0, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	return rows[0], nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	err := r.db.QueryRowContext(ctx, insertEventSQL,
		e.Name, e.Description, e.Address, e.When, e.OrganizerID,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}
