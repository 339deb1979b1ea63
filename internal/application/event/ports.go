package event

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	pagination.Source[*domain.Event]

	// First returns the first row of q, or a not_found AppError.
	First(ctx context.Context, q query.Query) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) error

	WithTx(ctx context.Context, fn func(r TxEventRepo) error) error
}

type TxEventRepo interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error
}

type AttendeeRepo interface {
	// Upsert inserts or updates the row keyed on (EventID, UserID) and sets a.ID.
	Upsert(ctx context.Context, a *domain.Attendee) error
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}
