package event_controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type eventPage struct {
	Items []*model.Event `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (ctrl *EventController) List(c *fiber.Ctx) error {
	search := c.Query("search")
	page, limit := util.Pagination(c)
	key := fmt.Sprintf("events:list:%s:%d:%d", url.QueryEscape(search), page, limit)

	var result eventPage
	err := ctrl.cache.Fetch(c.UserContext(), key, ctrl.ttl, &result, func(context.Context) (any, error) {
		events, total, err := ctrl.eventRepo.List(search, page, limit)
		if err != nil {
			return nil, err
		}
		return eventPage{Items: events, Total: total, Page: page, Limit: limit}, nil
	})
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Events fetched", result)
}

func (ctrl *EventController) Autocomplete(c *fiber.Ctx) error {
	search := c.Query("search")
	limit := c.QueryInt("limit", 10)
	key := fmt.Sprintf("events:autocomplete:%s:%d", url.QueryEscape(search), limit)

	var options []model.EventOption
	err := ctrl.cache.Fetch(c.UserContext(), key, ctrl.ttl, &options, func(context.Context) (any, error) {
		return ctrl.eventRepo.Autocomplete(search, limit)
	})
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Events fetched", options)
}

func (ctrl *EventController) GetByID(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	var event model.Event
	err = ctrl.cache.Fetch(c.UserContext(), fmt.Sprintf("events:%d", id), ctrl.ttl, &event, func(context.Context) (any, error) {
		found, err := ctrl.eventRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, errEventNotFound
		}
		return found, nil
	})
	if errors.Is(err, errEventNotFound) {
		return response.SendNotFound(c, "Event not found")
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Event found", event)
}
