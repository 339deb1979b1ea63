package event

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

type CreateCmd struct {
	ActorID int64

	Name        string
	Description string
	Address     string
	When        time.Time
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if cmd.ActorID <= 0 {
		return nil, domain.ErrForbidden("not allowed")
	}
	e, err := domain.NewEvent(cmd.ActorID, cmd.Name, cmd.Description, cmd.Address, cmd.When)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		zlog.Error().Err(err).Str("op", "create_event").Int64("organizer_id", cmd.ActorID).Msg("create event failed")
		return nil, err
	}

	publish(ctx, s, RoutingEventCreated, payloadFromEvent(e))
	return e, nil
}

func isAppError(err error) bool {
	_, ok := domain.AsAppError(err)
	return ok
}
