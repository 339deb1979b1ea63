package event

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Service struct {
	repo      EventRepo
	attendees AttendeeRepo
	pub       EventPublisher
	clock     Clock
	resolver  query.Resolver

	pageSize int
}

// New wires the service. pub may be nil; pageSize <= 0 uses
// pagination.DefaultLimit.
func New(
	repo EventRepo,
	attendees AttendeeRepo,
	clock Clock,
	pub EventPublisher,
	resolver query.Resolver,
	pageSize int,
) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if pub == nil {
		pub = NoopPublisher{}
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultLimit
	}
	return &Service{
		repo:      repo,
		attendees: attendees,
		pub:       pub,
		clock:     clock,
		resolver:  resolver,
		pageSize:  pageSize,
	}
}

func (s *Service) PageSize() int { return s.pageSize }

// Events are editable by their organizer only.
func canManage(actorID int64, ev *domain.Event) bool {
	return ev.IsOrganizedBy(actorID)
}
