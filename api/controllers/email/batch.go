package email_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

type batchSummary struct {
	Queued    bool                  `json:"queued"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Results   []mailing.BatchResult `json:"results"`
}

// SendCertificateBatch either queues one task per attendee or sends them all
// in process, depending on whether a queue is configured.
func (ctrl *EmailController) SendCertificateBatch(c *fiber.Ctx) error {
	body := new(payload.BatchCertificateEmailPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	var results []mailing.BatchResult
	if ctrl.queue != nil {
		results = make([]mailing.BatchResult, len(body.AttendeeIDs))
		for i, id := range body.AttendeeIDs {
			results[i] = mailing.BatchResult{AttendeeID: id, Success: true}
			taskID, err := ctrl.queue.EnqueueCertificateEmail(c.UserContext(), body.EventID, id)
			if err != nil {
				results[i].Success = false
				results[i].Error = err.Error()
				continue
			}
			results[i].TaskID = taskID
		}
	} else {
		results = ctrl.mailer.SendCertificateBatch(c.UserContext(), body.EventID, body.AttendeeIDs)
	}

	summary := batchSummary{Queued: ctrl.queue != nil, Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	slog.Info("Email SendCertificateBatch", "event_id", body.EventID, "queued", summary.Queued, "succeeded", summary.Succeeded, "failed", summary.Failed)
	return response.SendSuccess(c, "Certificate batch processed", summary)
}
