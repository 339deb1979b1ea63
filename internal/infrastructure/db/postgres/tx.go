package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

func (r *Repo) WithTx(ctx context.Context, fn func(tr event.TxEventRepo) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txRepo{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepo struct {
	tx *sql.Tx
}

func (r *txRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.tx.QueryRowContext(ctx, selectEventForUpdateSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, err
}

func (r *txRepo) Update(ctx context.Context, e *domain.Event) error {
	res, err := r.tx.ExecContext(ctx, updateEventSQL,
		e.ID, e.Name, e.Description, e.Address, e.When,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// Delete relies on ON DELETE CASCADE to drop the event's attendees.
func (r *txRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, deleteEventSQL, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}
