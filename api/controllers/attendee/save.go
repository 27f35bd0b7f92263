package attendee_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

// Save updates the attendee registered under the payload email, or inserts a
// new one. A new attendee answers 201.
func (ctrl *AttendeeController) Save(c *fiber.Ctx) error {
	body := new(payload.SaveAttendeePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	attendee, created, err := ctrl.attendeeRepo.Save(*body)
	if errors.Is(err, util.ErrDuplicate) {
		return response.SendConflict(c, "Attendee with this email already exists")
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}

	if created {
		slog.Info("Attendee Save created", "id", attendee.ID, "email", attendee.Email)
		return response.SendCreated(c, "Attendee created", attendee)
	}
	return response.SendSuccess(c, "Attendee updated", attendee)
}

func (ctrl *AttendeeController) UpdateEvents(c *fiber.Ctx) error {
	id, ok := attendeeID(c)
	if !ok {
		return response.SendFailed(c, "Invalid attendee id")
	}

	body := new(payload.AttendeeEventsPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	attendee, err := ctrl.attendeeRepo.UpdateEvents(id, body.Events)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if attendee == nil {
		return response.SendNotFound(c, "Attendee not found")
	}

	return response.SendSuccess(c, "Attendee events updated", attendee)
}

func (ctrl *AttendeeController) Update(c *fiber.Ctx) error {
	id, ok := attendeeID(c)
	if !ok {
		return response.SendFailed(c, "Invalid attendee id")
	}

	body := new(payload.UpdateAttendeePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	attendee, err := ctrl.attendeeRepo.Update(id, *body)
	if errors.Is(err, util.ErrDuplicate) {
		return response.SendConflict(c, "Attendee with this email already exists")
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if attendee == nil {
		return response.SendNotFound(c, "Attendee not found")
	}

	return response.SendSuccess(c, "Attendee updated", attendee)
}

func (ctrl *AttendeeController) Delete(c *fiber.Ctx) error {
	id, ok := attendeeID(c)
	if !ok {
		return response.SendFailed(c, "Invalid attendee id")
	}

	attendee, err := ctrl.attendeeRepo.Delete(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if attendee == nil {
		return response.SendNotFound(c, "Attendee not found")
	}

	slog.Info("Attendee Delete successful", "id", id)
	return response.SendSuccess(c, "Attendee deleted", attendee)
}
