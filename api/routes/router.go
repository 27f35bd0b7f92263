package routes

import (
	"github.com/gofiber/fiber/v2"
	accommodation_controller "github.com/sunthewhat/event-cert-api/api/controllers/accommodation"
	attendee_controller "github.com/sunthewhat/event-cert-api/api/controllers/attendee"
	certificate_controller "github.com/sunthewhat/event-cert-api/api/controllers/certificate"
	email_controller "github.com/sunthewhat/event-cert-api/api/controllers/email"
	event_controller "github.com/sunthewhat/event-cert-api/api/controllers/event"
	file_controller "github.com/sunthewhat/event-cert-api/api/controllers/file"
	logs_controller "github.com/sunthewhat/event-cert-api/api/controllers/logs"
	settings_controller "github.com/sunthewhat/event-cert-api/api/controllers/settings"
	"github.com/sunthewhat/event-cert-api/api/middleware"
)

type Controllers struct {
	Certificate   *certificate_controller.CertificateController
	File          *file_controller.FileController
	Event         *event_controller.EventController
	Attendee      *attendee_controller.AttendeeController
	Email         *email_controller.EmailController
	Settings      *settings_controller.SettingsController
	Accommodation *accommodation_controller.AccommodationController
	Logs          *logs_controller.LogsController
}

// Init mounts every route under /api. Only /api/public skips authentication.
func Init(router fiber.Router, ctrls Controllers, jwtSecret string) {
	api := router.Group("api")

	SetupPublicRoutes(api.Group("public"), ctrls.File)

	protected := api.Group("", middleware.Jwt(jwtSecret))

	SetupCertificateRoutes(protected, ctrls.Certificate)
	SetupFileRoutes(protected, ctrls.File)
	SetupEventRoutes(protected, ctrls.Event)
	SetupAttendeeRoutes(protected, ctrls.Attendee)
	SetupEmailRoutes(protected, ctrls.Email)
	SetupSettingsRoutes(protected, ctrls.Settings)
	SetupAccommodationRoutes(protected, ctrls.Accommodation)

	protected.Get("logs", ctrls.Logs.List)
}
