package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
)

// Aliases a Query may select into. Anything else is rejected so an
// aggregation name never reaches the SQL text unchecked.
var aggregationAliases = map[string]bool{
	query.AttendeeCount:    true,
	query.AttendeeAccepted: true,
	query.AttendeeMaybe:    true,
	query.AttendeeRejected: true,
}

var relationTables = map[query.Relation]string{
	query.RelationAttendees: "attendees",
}

var orderColumns = map[query.Column]string{
	query.ColumnID:   "e.id",
	query.ColumnWhen: `e."when"`,
}

// binder hands out positional parameters in the order they are written.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// compileSelect renders q as one SELECT. Relation counts are correlated
// scalar subqueries so they never multiply event rows. A nil w means no
// LIMIT/OFFSET.
func compileSelect(q query.Query, w *pagination.Window) (string, []any, error) {
	var b binder

	cols := []string{eventColumns}
	for _, a := range q.Aggregations() {
		expr, err := b.aggregate(a)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, expr+" AS "+a.Name)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM events e")
	if err := b.fromClause(&sb, q); err != nil {
		return "", nil, err
	}

	ord, err := orderClause(q.Order())
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(ord)

	if w != nil {
		sb.WriteString(" LIMIT " + b.bind(w.Limit))
		sb.WriteString(" OFFSET " + b.bind(w.Offset))
	}
	return sb.String(), b.args, nil
}

// compileCount renders the row count of q. Aggregations and order do not
// change the count and are left out.
func compileCount(q query.Query) (string, []any, error) {
	var b binder
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM events e")
	if err := b.fromClause(&sb, q); err != nil {
		return "", nil, err
	}
	return sb.String(), b.args, nil
}

func (b *binder) aggregate(a query.Aggregation) (string, error) {
	if !aggregationAliases[a.Name] {
		return "", fmt.Errorf("unsupported aggregation %q", a.Name)
	}
	table, ok := relationTables[a.Relation]
	if !ok {
		return "", fmt.Errorf("unsupported relation %q", a.Relation)
	}
	expr := "(SELECT COUNT(*) FROM " + table + " a WHERE a.event_id = e.id"
	if a.Answer != nil {
		expr += " AND a.answer = " + b.bind(int(*a.Answer))
	}
	return expr + ")", nil
}

// fromClause writes joins then the WHERE clause.
func (b *binder) fromClause(sb *strings.Builder, q query.Query) error {
	for i, j := range q.Joins() {
		table, ok := relationTables[j.Relation]
		if !ok {
			return fmt.Errorf("unsupported relation %q", j.Relation)
		}
		alias := "j" + strconv.Itoa(i)
		fmt.Fprintf(sb, " JOIN %s %s ON %s.event_id = e.id AND %s.user_id = %s",
			table, alias, alias, alias, b.bind(j.UserID))
	}

	preds := q.Predicates()
	if len(preds) == 0 {
		return nil
	}
	conds := make([]string, 0, len(preds))
	for _, p := range preds {
		c, err := b.predicate(p)
		if err != nil {
			return err
		}
		conds = append(conds, c)
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(conds, " AND "))
	return nil
}

func (b *binder) predicate(p query.Predicate) (string, error) {
	switch p := p.(type) {
	case query.IDIs:
		return "e.id = " + b.bind(p.ID), nil
	case query.OrganizerIs:
		return "e.organizer_id = " + b.bind(p.UserID), nil
	case query.WhenBetween:
		from := b.bind(p.From)
		to := b.bind(p.To)
		return `e."when" >= ` + from + ` AND e."when" < ` + to, nil
	case query.WhenWeekIs:
		col := `e."when"`
		if tz := zoneName(p); tz != "" {
			col += " AT TIME ZONE " + b.bind(tz)
		}
		return "CAST(TO_CHAR(" + col + ", 'WW') AS integer) = " + b.bind(p.Week), nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

// zoneName is empty when the session time zone should be used.
func zoneName(p query.WhenWeekIs) string {
	if p.Location == nil {
		return ""
	}
	name := p.Location.String()
	if name == "Local" {
		return ""
	}
	return name
}

func orderClause(o query.Order) (string, error) {
	col, ok := orderColumns[o.Column]
	if !ok {
		return "", fmt.Errorf("unsupported order column %q", o.Column)
	}
	dir := query.Desc
	if o.Direction == query.Asc {
		dir = query.Asc
	}
	out := " ORDER BY " + col + " " + string(dir)
	if o.Column != query.ColumnID {
		out += ", e.id " + string(dir)
	}
	return out, nil
}
