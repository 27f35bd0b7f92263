package accommodation_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func (ctrl *AccommodationController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateAccommodationPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	acc, err := ctrl.accommodationRepo.Create(*body)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	slog.Info("Accommodation Create successful", "id", acc.ID, "name", acc.Name)
	return response.SendCreated(c, "Accommodation created", acc)
}

func (ctrl *AccommodationController) Update(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.UpdateAccommodationPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	acc, err := ctrl.accommodationRepo.Update(id, *body)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if acc == nil {
		return response.SendNotFound(c, "Accommodation not found")
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Accommodation updated", acc)
}

func (ctrl *AccommodationController) Delete(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	acc, err := ctrl.accommodationRepo.Delete(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if acc == nil {
		return response.SendNotFound(c, "Accommodation not found")
	}
	ctrl.invalidate(c.UserContext())

	slog.Info("Accommodation Delete successful", "id", id)
	return response.SendSuccess(c, "Accommodation deleted", acc)
}
