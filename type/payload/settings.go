package payload

import "encoding/json"

// SMTPSettingsPayload is stored verbatim; both the nested and the flat shape are accepted.
type SMTPSettingsPayload struct {
	SMTP json.RawMessage `json:"smtp" validate:"required"`
}
