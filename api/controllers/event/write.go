package event_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

func (ctrl *EventController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateEventPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	event, err := ctrl.eventRepo.Create(*body)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	slog.Info("Event Create successful", "id", event.ID, "name", event.Name)
	return response.SendCreated(c, "Event created", event)
}

func (ctrl *EventController) Update(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.UpdateEventPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	event, err := ctrl.eventRepo.Update(id, *body)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Event updated", event)
}

// UpdateEmail merges one email template into the event, keeping the others.
func (ctrl *EventController) UpdateEmail(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}
	kind := c.Params("type")
	if kind == "" {
		return response.SendFailed(c, "Email type is required")
	}

	tmpl := new(model.EmailTemplate)
	if err := c.BodyParser(tmpl); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	event, err := ctrl.eventRepo.MergeEmail(id, kind, *tmpl)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Email template saved", event)
}

// ReplaceList overwrites the attendees, attended or paid id list.
func (ctrl *EventController) ReplaceList(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.EventAttendeeListPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}
	if body.IDs == nil {
		body.IDs = []string{}
	}

	event, err := ctrl.eventRepo.ReplaceList(id, c.Params("list"), body.IDs)
	if errors.Is(err, eventmodel.ErrUnknownList) {
		return response.SendFailed(c, err.Error())
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Event list updated", event)
}

func (ctrl *EventController) Delete(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	event, err := ctrl.eventRepo.Delete(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	ctrl.invalidate(c.UserContext())

	slog.Info("Event Delete successful", "id", id)
	return response.SendSuccess(c, "Event deleted", event)
}
