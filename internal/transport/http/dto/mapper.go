package dto

import (
	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
)

func ToEventResp(e *domain.Event) EventResp {
	return EventResp{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Address:     e.Address,
		When:        e.When,
		OrganizerID: e.OrganizerID,

		AttendeeCount:    e.AttendeeCount,
		AttendeeAccepted: e.AttendeeAccepted,
		AttendeeMaybe:    e.AttendeeMaybe,
		AttendeeRejected: e.AttendeeRejected,
	}
}

func ToEventPage(res pagination.Result[*domain.Event]) PageResp[EventResp] {
	items := make([]EventResp, 0, len(res.Items))
	for _, e := range res.Items {
		items = append(items, ToEventResp(e))
	}

	out := PageResp[EventResp]{
		Items:       items,
		CurrentPage: res.CurrentPage,
		Limit:       res.Limit,
	}
	if res.HasTotal {
		total, pages := res.Total, res.TotalPages
		out.Total = &total
		out.TotalPages = &pages
	}
	return out
}

func ToAttendeeResp(a *domain.Attendee) AttendeeResp {
	return AttendeeResp{
		ID:      a.ID,
		EventID: a.EventID,
		UserID:  a.UserID,
		Answer:  a.Answer.String(),
	}
}

func ToAttendeeList(as []*domain.Attendee) []AttendeeResp {
	out := make([]AttendeeResp, 0, len(as))
	for _, a := range as {
		out = append(out, ToAttendeeResp(a))
	}
	return out
}
