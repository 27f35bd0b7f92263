package payload

type CheckAttendeePayload struct {
	Email string `json:"email" validate:"required,email"`
}

type SaveAttendeePayload struct {
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	EventID   *int64         `json:"event_id"`
	Data      map[string]any `json:"data"`
}

type UpdateAttendeePayload struct {
	FirstName *string        `json:"first_name"`
	LastName  *string        `json:"last_name"`
	Email     *string        `json:"email" validate:"omitempty,email"`
	Data      map[string]any `json:"data"`
}

type AttendeeEventsPayload struct {
	Events []int64 `json:"events" validate:"required"`
}

type AttendeeIDsPayload struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}
