package attendee_controller

import (
	attendeemodel "github.com/sunthewhat/event-cert-api/api/model/attendeeModel"
)

type AttendeeController struct {
	attendeeRepo attendeemodel.IAttendeeRepository
}

func NewAttendeeController(attendeeRepo attendeemodel.IAttendeeRepository) *AttendeeController {
	return &AttendeeController{attendeeRepo: attendeeRepo}
}
