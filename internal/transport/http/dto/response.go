package dto

import "time"

// EventResp is the stable API response model. The attendee fields are
// derived per request and never stored.
type EventResp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	When        time.Time `json:"when"`
	OrganizerID int64     `json:"organizer_id"`

	AttendeeCount    int `json:"attendee_count"`
	AttendeeAccepted int `json:"attendee_accepted"`
	AttendeeMaybe    int `json:"attendee_maybe"`
	AttendeeRejected int `json:"attendee_rejected"`
}

type AttendeeResp struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	UserID  int64  `json:"user_id"`
	Answer  string `json:"answer"`
}

// PageResp omits total and total_pages when the listing was not counted.
type PageResp[T any] struct {
	Items       []T  `json:"items"`
	Total       *int `json:"total,omitempty"`
	CurrentPage int  `json:"current_page"`
	Limit       int  `json:"limit"`
	TotalPages  *int `json:"total_pages,omitempty"`
}
