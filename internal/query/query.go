// Package query describes event listing queries as immutable values.
//
// A Query carries predicates, relation joins, relation-count aggregations and an
// order. Builders never mutate their receiver, so every intermediate composition
// can be inspected (and tested) without touching storage. Storage adapters
// compile a Query into their own dialect.
package query

import (
	"time"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Column string

const (
	ColumnID   Column = "id"
	ColumnWhen Column = "when"
)

type Order struct {
	Column    Column
	Direction Direction
}

// Predicate is a closed set of filters over Event rows.
type Predicate interface {
	predicate()
}

// IDIs matches a single event.
type IDIs struct{ ID int64 }

// OrganizerIs matches events owned by UserID.
type OrganizerIs struct{ UserID int64 }

// WhenBetween matches From <= when < To.
type WhenBetween struct {
	From time.Time
	To   time.Time
}

// WhenWeekIs matches events whose week number (see WeekNumber), read in
// Location, equals Week.
type WhenWeekIs struct {
	Week     int
	Location *time.Location
}

func (IDIs) predicate()        {}
func (OrganizerIs) predicate() {}
func (WhenBetween) predicate() {}
func (WhenWeekIs) predicate()  {}

type Relation string

const RelationAttendees Relation = "attendees"

// Join is an inner join restricting events to those having a related row
// owned by UserID.
type Join struct {
	Relation Relation
	UserID   int64
}

type Query struct {
	predicates   []Predicate
	joins        []Join
	aggregations []Aggregation
	order        Order
}

// Base returns every event in canonical order (id descending).
func Base() Query {
	return Query{order: Order{Column: ColumnID, Direction: Desc}}
}

func (q Query) Where(p Predicate) Query {
	out := q.clone()
	out.predicates = append(out.predicates, p)
	return out
}

func (q Query) JoinOn(j Join) Query {
	out := q.clone()
	out.joins = append(out.joins, j)
	return out
}

func (q Query) Aggregate(a Aggregation) Query {
	out := q.clone()
	out.aggregations = append(out.aggregations, a)
	return out
}

func (q Query) WithID(id int64) Query {
	return q.Where(IDIs{ID: id})
}

func (q Query) WithOrganizer(userID int64) Query {
	return q.Where(OrganizerIs{UserID: userID})
}

// WithAttendee restricts to events the user has any recorded answer for.
func (q Query) WithAttendee(userID int64) Query {
	return q.JoinOn(Join{Relation: RelationAttendees, UserID: userID})
}

func (q Query) Predicates() []Predicate     { return append([]Predicate(nil), q.predicates...) }
func (q Query) Joins() []Join               { return append([]Join(nil), q.joins...) }
func (q Query) Aggregations() []Aggregation { return append([]Aggregation(nil), q.aggregations...) }
func (q Query) Order() Order                { return q.order }

func (q Query) clone() Query {
	return Query{
		predicates:   append([]Predicate(nil), q.predicates...),
		joins:        append([]Join(nil), q.joins...),
		aggregations: append([]Aggregation(nil), q.aggregations...),
		order:        q.order,
	}
}
