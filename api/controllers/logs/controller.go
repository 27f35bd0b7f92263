package logs_controller

import (
	"github.com/gofiber/fiber/v2"
	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/type/response"
)

type LogsController struct {
	logRepo operationlogmodel.IOperationLogRepository
}

func NewLogsController(logRepo operationlogmodel.IOperationLogRepository) *LogsController {
	return &LogsController{logRepo: logRepo}
}

// List returns the most recent operation log entries, optionally for one table.
func (ctrl *LogsController) List(c *fiber.Ctx) error {
	entries, err := ctrl.logRepo.List(c.Query("table"), c.QueryInt("limit", 100))
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Logs fetched", entries)
}
