package attendee_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

// Check reports whether an attendee with the given email is already registered.
func (ctrl *AttendeeController) Check(c *fiber.Ctx) error {
	body := new(payload.CheckAttendeePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	attendee, err := ctrl.attendeeRepo.GetByEmail(body.Email)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Attendee checked", fiber.Map{
		"exists":   attendee != nil,
		"attendee": attendee,
	})
}

func (ctrl *AttendeeController) GetByIDs(c *fiber.Ctx) error {
	body := new(payload.AttendeeIDsPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	attendees, err := ctrl.attendeeRepo.GetByIDs(body.IDs)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Attendees fetched", attendees)
}

func (ctrl *AttendeeController) Search(c *fiber.Ctx) error {
	page, limit := util.Pagination(c)

	attendees, total, err := ctrl.attendeeRepo.Search(c.Query("search"), page, limit)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Attendees fetched", util.Page{
		Items: attendees,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (ctrl *AttendeeController) GetByID(c *fiber.Ctx) error {
	id, ok := attendeeID(c)
	if !ok {
		return response.SendFailed(c, "Invalid attendee id")
	}

	attendee, err := ctrl.attendeeRepo.GetByID(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if attendee == nil {
		return response.SendNotFound(c, "Attendee not found")
	}

	return response.SendSuccess(c, "Attendee found", attendee)
}

func attendeeID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
