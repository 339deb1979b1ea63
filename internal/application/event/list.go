package event

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

type ListFilter struct {
	When query.Window
	Page int // 1-based; < 1 is treated as 1
}

func (f *ListFilter) Normalize() error {
	w, err := query.ParseWindow(string(f.When))
	if err != nil {
		return err
	}
	f.When = w
	if f.Page < 1 {
		f.Page = 1
	}
	return nil
}

type Page = pagination.Result[*domain.Event]

// ListEvents returns one page of all events, newest first, narrowed by the
// filter's time window and annotated with attendee counts.
func (s *Service) ListEvents(ctx context.Context, f ListFilter) (Page, error) {
	if err := f.Normalize(); err != nil {
		return Page{}, err
	}

	q := s.resolver.Apply(query.Base(), f.When, s.clock.Now())
	q = query.WithAttendeeCounts(q)

	res, err := s.page(ctx, q, f.Page)
	if err != nil {
		zlog.Error().Err(err).
			Str("op", "list_events").
			Str("when", string(f.When)).
			Int("page", f.Page).
			Msg("list events failed")
		return Page{}, fmt.Errorf("list events: %w", err)
	}
	return res, nil
}

// GetOne returns the event with its attendee counts.
func (s *Service) GetOne(ctx context.Context, id int64) (*domain.Event, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	ev, err := s.repo.First(ctx, query.WithAttendeeCounts(query.Base().WithID(id)))
	if err != nil {
		if !isAppError(err) {
			zlog.Error().Err(err).Str("op", "get_event").Int64("event_id", id).Msg("get event failed")
		}
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return ev, nil
}

func (s *Service) ListOrganizedBy(ctx context.Context, userID int64, page int) (Page, error) {
	q := query.WithAttendeeCounts(query.Base().WithOrganizer(userID))
	res, err := s.page(ctx, q, page)
	if err != nil {
		zlog.Error().Err(err).
			Str("op", "list_organized_by").
			Int64("user_id", userID).
			Int("page", page).
			Msg("list events failed")
		return Page{}, fmt.Errorf("list events organized by %d: %w", userID, err)
	}
	return res, nil
}

// ListAttendedBy lists events the user has answered, whatever the answer.
func (s *Service) ListAttendedBy(ctx context.Context, userID int64, page int) (Page, error) {
	q := query.WithAttendeeCounts(query.Base().WithAttendee(userID))
	res, err := s.page(ctx, q, page)
	if err != nil {
		zlog.Error().Err(err).
			Str("op", "list_attended_by").
			Int64("user_id", userID).
			Int("page", page).
			Msg("list events failed")
		return Page{}, fmt.Errorf("list events attended by %d: %w", userID, err)
	}
	return res, nil
}

func (s *Service) page(ctx context.Context, q query.Query, page int) (Page, error) {
	return pagination.Paginate[*domain.Event](ctx, s.repo, q, pagination.Options{
		Page:      page,
		Limit:     s.pageSize,
		WithTotal: true,
	})
}
