package routes

import (
	"github.com/gofiber/fiber/v2"
	attendee_controller "github.com/sunthewhat/event-cert-api/api/controllers/attendee"
	event_controller "github.com/sunthewhat/event-cert-api/api/controllers/event"
)

func SetupEventRoutes(router fiber.Router, ctrl *event_controller.EventController) {
	eventGroup := router.Group("events")

	eventGroup.Get("", ctrl.List)
	eventGroup.Get("autocomplete", ctrl.Autocomplete)
	eventGroup.Post("", ctrl.Create)
	eventGroup.Get(":id", ctrl.GetByID)
	eventGroup.Patch(":id", ctrl.Update)
	eventGroup.Delete(":id", ctrl.Delete)
	eventGroup.Patch(":id/emails/:type", ctrl.UpdateEmail)
	eventGroup.Put(":id/:list", ctrl.ReplaceList)
}

func SetupAttendeeRoutes(router fiber.Router, ctrl *attendee_controller.AttendeeController) {
	attendeeGroup := router.Group("attendees")

	attendeeGroup.Get("", ctrl.Search)
	attendeeGroup.Post("", ctrl.Save)
	attendeeGroup.Post("check", ctrl.Check)
	attendeeGroup.Post("by-ids", ctrl.GetByIDs)
	attendeeGroup.Get(":id", ctrl.GetByID)
	attendeeGroup.Patch(":id", ctrl.Update)
	attendeeGroup.Delete(":id", ctrl.Delete)
	attendeeGroup.Put(":id/events", ctrl.UpdateEvents)
}
