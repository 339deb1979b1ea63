package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	appCtx "github.com/baechuer/real-time-ressys/services/events-api/internal/pkg/context"
)

const (
	EventVersion  = 1
	EventProducer = "events-api"
)

const (
	RoutingEventCreated     = "event.created"
	RoutingEventUpdated     = "event.updated"
	RoutingEventDeleted     = "event.deleted"
	RoutingAttendeeAnswered = "attendee.answered"
)

// DomainEventEnvelope is the wire contract of every message we emit.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// EventPayload is sent with event.created and event.updated.
type EventPayload struct {
	EventID     int64     `json:"event_id"`
	OrganizerID int64     `json:"organizer_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	When        time.Time `json:"when"`
}

type EventDeletedPayload struct {
	EventID     int64 `json:"event_id"`
	OrganizerID int64 `json:"organizer_id"`
}

type AttendeeAnsweredPayload struct {
	EventID int64  `json:"event_id"`
	UserID  int64  `json:"user_id"`
	Answer  string `json:"answer"`
}

func payloadFromEvent(e *domain.Event) EventPayload {
	return EventPayload{
		EventID:     e.ID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		Address:     e.Address,
		When:        e.When,
	}
}

// publish is best-effort: the write has already committed, so failures are
// logged and dropped.
func publish[T any](ctx context.Context, s *Service, routingKey string, payload T) {
	messageID := uuid.NewString()
	env := DomainEventEnvelope[T]{
		Version:    EventVersion,
		Producer:   EventProducer,
		MessageID:  messageID,
		TraceID:    appCtx.GetRequestID(ctx),
		OccurredAt: s.clock.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(env)
	if err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Msg("encode domain event failed")
		return
	}
	if err := s.pub.PublishEvent(ctx, routingKey, messageID, body); err != nil {
		zlog.Warn().Err(err).
			Str("routing_key", routingKey).
			Str("message_id", messageID).
			Msg("publish domain event failed")
	}
}
