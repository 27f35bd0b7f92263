package accommodation_controller

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	accommodationmodel "github.com/sunthewhat/event-cert-api/api/model/accommodationModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

func queryEventID(c *fiber.Ctx) (*int64, error) {
	if c.Query("eventId") == "" {
		return nil, nil
	}
	id := int64(c.QueryInt("eventId"))
	if id <= 0 {
		return nil, fmt.Errorf("eventId must be a positive integer")
	}
	return &id, nil
}

// List returns every accommodation, or those linked to ?eventId.
func (ctrl *AccommodationController) List(c *fiber.Ctx) error {
	eventID, err := queryEventID(c)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	key := "accommodations:list:all"
	if eventID != nil {
		key = fmt.Sprintf("accommodations:list:%d", *eventID)
	}

	var accommodations []*model.Accommodation
	err = ctrl.cache.Fetch(c.UserContext(), key, ctrl.ttl, &accommodations, func(context.Context) (any, error) {
		return ctrl.accommodationRepo.List(eventID)
	})
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Accommodations fetched", accommodations)
}

func (ctrl *AccommodationController) Available(c *fiber.Ctx) error {
	eventID, err := queryEventID(c)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}
	if eventID == nil {
		return response.SendFailed(c, "eventId is required")
	}

	var accommodations []*model.Accommodation
	err = ctrl.cache.Fetch(c.UserContext(), fmt.Sprintf("accommodations:available:%d", *eventID), ctrl.ttl, &accommodations,
		func(context.Context) (any, error) {
			return ctrl.accommodationRepo.Available(*eventID)
		})
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Available accommodations fetched", accommodations)
}

func (ctrl *AccommodationController) load(c *fiber.Ctx, id int64) (*model.Accommodation, error) {
	acc := new(model.Accommodation)
	err := ctrl.cache.Fetch(c.UserContext(), fmt.Sprintf("accommodations:%d", id), ctrl.ttl, acc, func(context.Context) (any, error) {
		found, err := ctrl.accommodationRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, accommodationmodel.ErrAccommodationNotFound
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (ctrl *AccommodationController) GetByID(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	acc, err := ctrl.load(c, id)
	if err != nil {
		return sendError(c, err)
	}

	return response.SendSuccess(c, "Accommodation found", acc)
}

// Capacity reports beds, reservations and free beds per room type.
func (ctrl *AccommodationController) Capacity(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	acc, err := ctrl.load(c, id)
	if err != nil {
		return sendError(c, err)
	}

	return response.SendSuccess(c, "Accommodation capacity", fiber.Map{
		"accommodationId": acc.ID,
		"rooms":           acc.Availability(),
		"totalAvailable":  acc.TotalAvailable(),
	})
}
