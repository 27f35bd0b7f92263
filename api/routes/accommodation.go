package routes

import (
	"github.com/gofiber/fiber/v2"
	accommodation_controller "github.com/sunthewhat/event-cert-api/api/controllers/accommodation"
)

func SetupAccommodationRoutes(router fiber.Router, ctrl *accommodation_controller.AccommodationController) {
	accommodationGroup := router.Group("accommodations")

	accommodationGroup.Get("", ctrl.List)
	accommodationGroup.Get("available", ctrl.Available)
	accommodationGroup.Post("", ctrl.Create)
	accommodationGroup.Get(":id", ctrl.GetByID)
	accommodationGroup.Patch(":id", ctrl.Update)
	accommodationGroup.Delete(":id", ctrl.Delete)
	accommodationGroup.Get(":id/capacity", ctrl.Capacity)

	reservationGroup := accommodationGroup.Group(":id/reservations")
	reservationGroup.Get("", ctrl.ListReservations)
	reservationGroup.Post("", ctrl.AddReservation)
	reservationGroup.Post("batch-delete", ctrl.BatchDeleteReservations)
	reservationGroup.Post("batch-update", ctrl.BatchUpdateReservations)
	reservationGroup.Post("move", ctrl.MoveReservations)
	reservationGroup.Patch(":rid", ctrl.UpdateReservation)
	reservationGroup.Delete(":rid", ctrl.DeleteReservation)
}
