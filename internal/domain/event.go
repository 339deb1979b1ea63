package domain

import (
	"strings"
	"time"
)

type Event struct {
	ID          int64
	Name        string
	Description string
	Address     string
	When        time.Time
	OrganizerID int64

	// Relation counts. Only populated by queries that aggregate attendees.
	AttendeeCount    int
	AttendeeAccepted int
	AttendeeMaybe    int
	AttendeeRejected int
}

func NewEvent(organizerID int64, name, description, address string, when time.Time) (*Event, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	address = strings.TrimSpace(address)

	if organizerID <= 0 {
		return nil, ErrValidation("organizer_id is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if when.IsZero() {
		return nil, ErrValidation("when is required")
	}

	return &Event{
		Name:        name,
		Description: description,
		Address:     address,
		When:        when.UTC(),
		OrganizerID: organizerID,
	}, nil
}

func (e *Event) IsOrganizedBy(userID int64) bool {
	return userID > 0 && e.OrganizerID == userID
}

// ApplyUpdate patches the non-nil fields. Relation counts are left untouched.
func (e *Event) ApplyUpdate(name, description, address *string, when *time.Time) error {
	if name != nil {
		v := strings.TrimSpace(*name)
		if err := validateName(v); err != nil {
			return err
		}
		e.Name = v
	}
	if description != nil {
		v := strings.TrimSpace(*description)
		if err := validateDescription(v); err != nil {
			return err
		}
		e.Description = v
	}
	if address != nil {
		v := strings.TrimSpace(*address)
		if err := validateAddress(v); err != nil {
			return err
		}
		e.Address = v
	}
	if when != nil {
		if when.IsZero() {
			return ErrValidation("when must be a valid timestamp")
		}
		e.When = when.UTC()
	}
	return nil
}

func validateName(v string) error {
	if len(v) < 5 || len(v) > 255 {
		return ErrValidationMeta("invalid field", map[string]string{"name": "must be 5-255 chars"})
	}
	return nil
}

func validateDescription(v string) error {
	if len(v) < 5 || len(v) > 255 {
		return ErrValidationMeta("invalid field", map[string]string{"description": "must be 5-255 chars"})
	}
	return nil
}

func validateAddress(v string) error {
	if len(v) < 5 || len(v) > 25 {
		return ErrValidationMeta("invalid field", map[string]string{"address": "must be 5-25 chars"})
	}
	return nil
}
