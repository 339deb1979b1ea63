package event

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

type AnswerCmd struct {
	UserID  int64
	EventID int64
	Answer  domain.AttendeeAnswer
}

// Answer records the user's answer, replacing any previous one.
func (s *Service) Answer(ctx context.Context, cmd AnswerCmd) (*domain.Attendee, error) {
	if cmd.UserID <= 0 {
		return nil, domain.ErrForbidden("not allowed")
	}
	a, err := domain.NewAttendee(cmd.EventID, cmd.UserID, cmd.Answer)
	if err != nil {
		return nil, err
	}
	if err := s.attendees.Upsert(ctx, a); err != nil {
		return nil, err
	}

	publish(ctx, s, RoutingAttendeeAnswered, AttendeeAnsweredPayload{
		EventID: a.EventID,
		UserID:  a.UserID,
		Answer:  a.Answer.String(),
	})
	return a, nil
}

func (s *Service) ListAttendees(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendees.ListByEvent(ctx, eventID)
}

// GetAttendance returns not_found when the user has not answered.
func (s *Service) GetAttendance(ctx context.Context, userID, eventID int64) (*domain.Attendee, error) {
	return s.attendees.GetByEventAndUser(ctx, eventID, userID)
}
