// Package memory is an in-process implementation of the event and attendee
// repositories. It evaluates composed queries directly and is used by tests
// and by DATABASE_URL=memory:// in local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

type attendeeKey struct {
	eventID int64
	userID  int64
}

type Store struct {
	mu sync.RWMutex

	events    map[int64]domain.Event
	attendees map[attendeeKey]domain.Attendee

	nextEventID    int64
	nextAttendeeID int64

	failErr error
}

func New() *Store {
	return &Store{
		events:    map[int64]domain.Event{},
		attendees: map[attendeeKey]domain.Attendee{},
	}
}

// FailReads makes every subsequent read return err. nil restores normal
// behaviour.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *Store) readErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failErr
}

// ---- query evaluation ----

func (s *Store) Fetch(ctx context.Context, q query.Query, w pagination.Window) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErr(ctx); err != nil {
		return nil, err
	}

	rows := s.match(q)
	if w.Offset >= len(rows) {
		return []*domain.Event{}, nil
	}
	end := len(rows)
	if w.Limit > 0 && w.Offset+w.Limit < end {
		end = w.Offset + w.Limit
	}
	rows = rows[w.Offset:end]

	out := make([]*domain.Event, 0, len(rows))
	for _, e := range rows {
		for _, a := range q.Aggregations() {
			a.Assign(&e, s.countRelated(e.ID, a))
		}
		out = append(out, &e)
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, q query.Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErr(ctx); err != nil {
		return 0, err
	}
	return len(s.match(q)), nil
}

func (s *Store) First(ctx context.Context, q query.Query) (*domain.Event, error) {
	rows, err := s.Fetch(ctx, q, pagination.Window{Offset: 0, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	return rows[0], nil
}

// match returns filtered copies in q's order. Caller holds the lock.
func (s *Store) match(q query.Query) []domain.Event {
	var out []domain.Event
	for _, e := range s.events {
		if s.matches(q, e) {
			out = append(out, e)
		}
	}

	ord := q.Order()
	sort.Slice(out, func(i, j int) bool {
		if ord.Direction == query.Desc {
			return lessBy(ord.Column, out[j], out[i])
		}
		return lessBy(ord.Column, out[i], out[j])
	})
	return out
}

func lessBy(c query.Column, a, b domain.Event) bool {
	if c == query.ColumnWhen && !a.When.Equal(b.When) {
		return a.When.Before(b.When)
	}
	return a.ID < b.ID
}

func (s *Store) matches(q query.Query, e domain.Event) bool {
	for _, p := range q.Predicates() {
		if !matchPredicate(p, e) {
			return false
		}
	}
	for _, j := range q.Joins() {
		if j.Relation != query.RelationAttendees {
			return false
		}
		if _, ok := s.attendees[attendeeKey{eventID: e.ID, userID: j.UserID}]; !ok {
			return false
		}
	}
	return true
}

func matchPredicate(p query.Predicate, e domain.Event) bool {
	switch p := p.(type) {
	case query.IDIs:
		return e.ID == p.ID
	case query.OrganizerIs:
		return e.OrganizerID == p.UserID
	case query.WhenBetween:
		return !e.When.Before(p.From) && e.When.Before(p.To)
	case query.WhenWeekIs:
		when := e.When
		if p.Location != nil {
			when = when.In(p.Location)
		}
		return query.WeekNumber(when) == p.Week
	default:
		return false
	}
}

func (s *Store) countRelated(eventID int64, a query.Aggregation) int {
	if a.Relation != query.RelationAttendees {
		return 0
	}
	n := 0
	for k, att := range s.attendees {
		if k.eventID != eventID {
			continue
		}
		if a.Answer != nil && att.Answer != *a.Answer {
			continue
		}
		n++
	}
	return n
}

// ---- events ----

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErr(ctx); err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *Store) get(id int64) (*domain.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return &e, nil
}

func (s *Store) Create(ctx context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEventID++
	e.ID = s.nextEventID
	s.events[e.ID] = stripCounts(*e)
	return nil
}

func (s *Store) WithTx(ctx context.Context, fn func(r event.TxEventRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Work on a snapshot so a failing fn leaves the store untouched.
	tx := &txStore{
		events:    make(map[int64]domain.Event, len(s.events)),
		attendees: make(map[attendeeKey]domain.Attendee, len(s.attendees)),
	}
	for k, v := range s.events {
		tx.events[k] = v
	}
	for k, v := range s.attendees {
		tx.attendees[k] = v
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.events = tx.events
	s.attendees = tx.attendees
	return nil
}

type txStore struct {
	events    map[int64]domain.Event
	attendees map[attendeeKey]domain.Attendee
}

func (t *txStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := t.events[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return &e, nil
}

func (t *txStore) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := t.events[e.ID]; !ok {
		return domain.ErrNotFound("event not found")
	}
	t.events[e.ID] = stripCounts(*e)
	return nil
}

// Delete removes the event and its attendees, like ON DELETE CASCADE.
func (t *txStore) Delete(ctx context.Context, id int64) error {
	if _, ok := t.events[id]; !ok {
		return domain.ErrNotFound("event not found")
	}
	delete(t.events, id)
	for k := range t.attendees {
		if k.eventID == id {
			delete(t.attendees, k)
		}
	}
	return nil
}

func stripCounts(e domain.Event) domain.Event {
	e.AttendeeCount, e.AttendeeAccepted, e.AttendeeMaybe, e.AttendeeRejected = 0, 0, 0, 0
	return e
}

// ---- attendees ----

func (s *Store) Upsert(ctx context.Context, a *domain.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[a.EventID]; !ok {
		return domain.ErrNotFound("event not found")
	}
	k := attendeeKey{eventID: a.EventID, userID: a.UserID}
	if cur, ok := s.attendees[k]; ok {
		cur.Answer = a.Answer
		s.attendees[k] = cur
		a.ID = cur.ID
		return nil
	}
	s.nextAttendeeID++
	a.ID = s.nextAttendeeID
	s.attendees[k] = *a
	return nil
}

func (s *Store) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErr(ctx); err != nil {
		return nil, err
	}
	out := []*domain.Attendee{}
	for k, a := range s.attendees {
		if k.eventID == eventID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readErr(ctx); err != nil {
		return nil, err
	}
	a, ok := s.attendees[attendeeKey{eventID: eventID, userID: userID}]
	if !ok {
		return nil, domain.ErrNotFound("attendance not found")
	}
	return &a, nil
}

// Len reports the number of stored events and attendee rows.
func (s *Store) Len() (events, attendees int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), len(s.attendees)
}
