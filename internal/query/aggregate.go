package query

import "github.com/baechuer/real-time-ressys/services/events-api/internal/domain"

// Aggregation names. They double as the column aliases adapters select into.
const (
	AttendeeCount    = "attendee_count"
	AttendeeAccepted = "attendee_accepted"
	AttendeeMaybe    = "attendee_maybe"
	AttendeeRejected = "attendee_rejected"
)

// Aggregation is a per-event count of related rows. A nil Answer counts every
// related row; otherwise only rows with that answer are counted.
type Aggregation struct {
	Name     string
	Relation Relation
	Answer   *domain.AttendeeAnswer
}

// Assign stores a computed count on the matching Event field.
func (a Aggregation) Assign(e *domain.Event, n int) {
	switch a.Name {
	case AttendeeCount:
		e.AttendeeCount = n
	case AttendeeAccepted:
		e.AttendeeAccepted = n
	case AttendeeMaybe:
		e.AttendeeMaybe = n
	case AttendeeRejected:
		e.AttendeeRejected = n
	}
}

// WithAttendeeCounts annotates q with the total attendee count plus one
// independent count per answer. Buckets are separate aggregates so an empty
// bucket still yields 0.
func WithAttendeeCounts(q Query) Query {
	q = q.Aggregate(Aggregation{Name: AttendeeCount, Relation: RelationAttendees})
	for _, ans := range domain.Answers {
		q = q.Aggregate(Aggregation{
			Name:     answerAlias(ans),
			Relation: RelationAttendees,
			Answer:   answerPtr(ans),
		})
	}
	return q
}

func answerAlias(a domain.AttendeeAnswer) string {
	switch a {
	case domain.AnswerAccepted:
		return AttendeeAccepted
	case domain.AnswerMaybe:
		return AttendeeMaybe
	default:
		return AttendeeRejected
	}
}

func answerPtr(a domain.AttendeeAnswer) *domain.AttendeeAnswer { return &a }
