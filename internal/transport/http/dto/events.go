package dto

type CreateEventReq struct {
	Name        string `json:"name" validate:"required,min=5,max=255"`
	Description string `json:"description" validate:"required,min=5,max=255"`
	Address     string `json:"address" validate:"required,min=5,max=25"`
	When        string `json:"when" validate:"required,rfc3339"`
}

// UpdateEventReq is a partial update; nil fields are left unchanged.
type UpdateEventReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=5,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5,max=255"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=5,max=25"`
	When        *string `json:"when,omitempty" validate:"omitempty,rfc3339"`
}

// AnswerReq accepts "accepted", "maybe", "rejected" or their numeric codes.
type AnswerReq struct {
	Answer string `json:"answer" validate:"required,answer"`
}
