package query

import (
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

// Window is a symbolic time range over Event.When.
type Window string

const (
	WindowNone     Window = ""
	WindowToday    Window = "today"
	WindowTomorrow Window = "tomorrow"
	WindowThisWeek Window = "this-week"
	WindowNextWeek Window = "next-week"
)

func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if w == WindowNone {
		return WindowNone, nil
	}
	if _, ok := windowBuilders[w]; !ok {
		return WindowNone, domain.ErrValidationMeta("invalid query param", map[string]string{
			"when": "must be one of: today, tomorrow, this-week, next-week",
		})
	}
	return w, nil
}

// windowBuilder receives now already converted to the resolver's location.
type windowBuilder func(now time.Time) Predicate

var windowBuilders = map[Window]windowBuilder{
	WindowToday: func(now time.Time) Predicate {
		start := startOfDay(now)
		return WhenBetween{From: start, To: start.AddDate(0, 0, 1)}
	},
	WindowTomorrow: func(now time.Time) Predicate {
		start := startOfDay(now).AddDate(0, 0, 1)
		return WhenBetween{From: start, To: start.AddDate(0, 0, 1)}
	},
	WindowThisWeek: func(now time.Time) Predicate {
		return WhenWeekIs{Week: WeekNumber(now), Location: now.Location()}
	},
	// No year rollover: late December yields a week number that no date reaches.
	WindowNextWeek: func(now time.Time) Predicate {
		return WhenWeekIs{Week: WeekNumber(now) + 1, Location: now.Location()}
	},
}

// Resolver turns windows into predicates using one calendar location.
type Resolver struct {
	loc *time.Location
}

func NewResolver(loc *time.Location) Resolver {
	if loc == nil {
		loc = time.Local
	}
	return Resolver{loc: loc}
}

func (r Resolver) Location() *time.Location { return r.location() }

// Resolve returns the predicate for w at instant now. ok is false for
// WindowNone and unknown windows, meaning no filter applies.
func (r Resolver) Resolve(w Window, now time.Time) (Predicate, bool) {
	build, ok := windowBuilders[w]
	if !ok {
		return nil, false
	}
	return build(now.In(r.location())), true
}

// Apply adds the predicate for w to q, or returns q unchanged.
func (r Resolver) Apply(q Query, w Window, now time.Time) Query {
	p, ok := r.Resolve(w, now)
	if !ok {
		return q
	}
	return q.Where(p)
}

func (r Resolver) location() *time.Location {
	if r.loc == nil {
		return time.Local
	}
	return r.loc
}

// WeekNumber is the day-of-year week: Jan 1-7 is week 1, Jan 8-14 week 2 and
// so on. It matches Postgres TO_CHAR(ts, 'WW').
func WeekNumber(t time.Time) int {
	return (t.YearDay()-1)/7 + 1
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
