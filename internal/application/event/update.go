package event

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

type UpdateCmd struct {
	ActorID int64
	EventID int64

	Name        *string
	Description *string
	Address     *string
	When        *time.Time
}

func (c UpdateCmd) empty() bool {
	return c.Name == nil && c.Description == nil && c.Address == nil && c.When == nil
}

// Update applies the non-nil fields. An empty command only checks access and
// returns the stored event; nothing is written or published.
func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	var out *domain.Event

	err := s.repo.WithTx(ctx, func(r TxEventRepo) error {
		ev, err := r.GetByIDForUpdate(ctx, cmd.EventID)
		if err != nil {
			return err
		}
		if !canManage(cmd.ActorID, ev) {
			return domain.ErrForbidden("not allowed")
		}
		out = ev
		if cmd.empty() {
			return nil
		}
		if err := ev.ApplyUpdate(cmd.Name, cmd.Description, cmd.Address, cmd.When); err != nil {
			return err
		}
		return r.Update(ctx, ev)
	})
	if err != nil {
		return nil, err
	}
	if cmd.empty() {
		return out, nil
	}

	publish(ctx, s, RoutingEventUpdated, payloadFromEvent(out))
	return out, nil
}

// Delete removes the event and, with it, every attendee row.
func (s *Service) Delete(ctx context.Context, actorID, eventID int64) error {
	var organizerID int64

	err := s.repo.WithTx(ctx, func(r TxEventRepo) error {
		ev, err := r.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !canManage(actorID, ev) {
			return domain.ErrForbidden("not allowed")
		}
		organizerID = ev.OrganizerID
		return r.Delete(ctx, eventID)
	})
	if err != nil {
		return err
	}

	publish(ctx, s, RoutingEventDeleted, EventDeletedPayload{EventID: eventID, OrganizerID: organizerID})
	return nil
}
