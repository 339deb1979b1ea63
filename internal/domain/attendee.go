package domain

import "strings"

type AttendeeAnswer int

const (
	AnswerAccepted AttendeeAnswer = 1
	AnswerMaybe    AttendeeAnswer = 2
	AnswerRejected AttendeeAnswer = 3
)

// Answers lists every recognized answer in bucket order.
var Answers = []AttendeeAnswer{AnswerAccepted, AnswerMaybe, AnswerRejected}

func (a AttendeeAnswer) Valid() bool {
	return a == AnswerAccepted || a == AnswerMaybe || a == AnswerRejected
}

func (a AttendeeAnswer) String() string {
	switch a {
	case AnswerAccepted:
		return "accepted"
	case AnswerMaybe:
		return "maybe"
	case AnswerRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func ParseAnswer(s string) (AttendeeAnswer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted", "1":
		return AnswerAccepted, nil
	case "maybe", "2":
		return AnswerMaybe, nil
	case "rejected", "3":
		return AnswerRejected, nil
	}
	return 0, ErrValidationMeta("invalid field", map[string]string{
		"answer": "must be one of: accepted, maybe, rejected",
	})
}

// Attendee is one user's response to one event. At most one row exists per
// (EventID, UserID); having no row means the user has not answered.
type Attendee struct {
	ID      int64
	EventID int64
	UserID  int64
	Answer  AttendeeAnswer
}

func NewAttendee(eventID, userID int64, answer AttendeeAnswer) (*Attendee, error) {
	if eventID <= 0 {
		return nil, ErrValidation("event_id is required")
	}
	if userID <= 0 {
		return nil, ErrValidation("user_id is required")
	}
	if !answer.Valid() {
		return nil, ErrValidationMeta("invalid field", map[string]string{
			"answer": "must be one of: accepted, maybe, rejected",
		})
	}
	return &Attendee{EventID: eventID, UserID: userID, Answer: answer}, nil
}
