package accommodation_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func (ctrl *AccommodationController) ListReservations(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}
	page, limit := util.Pagination(c)

	reservations, total, err := ctrl.accommodationRepo.ListReservations(id, c.Query("search"), page, limit)
	if err != nil {
		return sendError(c, err)
	}

	return response.SendSuccess(c, "Reservations fetched", util.Page{
		Items: reservations,
		Total: int64(total),
		Page:  page,
		Limit: limit,
	})
}

func (ctrl *AccommodationController) AddReservation(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.ReservationPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	reservation, err := ctrl.accommodationRepo.AddReservation(id, *body, ctrl.cache.Clock().Now())
	if err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendCreated(c, "Reservation created", reservation)
}

func (ctrl *AccommodationController) UpdateReservation(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.ReservationUpdatePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	reservation, err := ctrl.accommodationRepo.UpdateReservation(id, c.Params("rid"), *body)
	if err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Reservation updated", reservation)
}

func (ctrl *AccommodationController) DeleteReservation(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	if err := ctrl.accommodationRepo.DeleteReservation(id, c.Params("rid")); err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Reservation deleted")
}

func (ctrl *AccommodationController) BatchDeleteReservations(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.ReservationBatchDeletePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	n, err := ctrl.accommodationRepo.BatchDeleteReservations(id, body.IDs)
	if err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Reservations deleted", fiber.Map{"deleted": n})
}

func (ctrl *AccommodationController) BatchUpdateReservations(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.ReservationBatchUpdatePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	n, err := ctrl.accommodationRepo.BatchUpdateReservations(id, body.IDs, body.Updates)
	if err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Reservations updated", fiber.Map{"updated": n})
}

// MoveReservations transfers reservations to another accommodation. The target
// must have room for all of them.
func (ctrl *AccommodationController) MoveReservations(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	body := new(payload.ReservationMovePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	n, err := ctrl.accommodationRepo.MoveReservations(id, body.IDs, body.TargetAccommodationID)
	if err != nil {
		return sendError(c, err)
	}
	ctrl.invalidate(c.UserContext())

	return response.SendSuccess(c, "Reservations moved", fiber.Map{
		"moved":                 n,
		"targetAccommodationId": body.TargetAccommodationID,
	})
}
