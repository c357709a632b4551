package dto

// Gateway webhook event names this service reacts to.
const (
	EventChargeSuccess         = "charge.success"
	EventTransferSuccess       = "transfer.success"
	EventTransferFailed        = "transfer.failed"
	EventTransferReversed      = "transfer.reversed"
	EventPaymentRequestSuccess = "paymentrequest.success"
)

// WebhookEvent is the gateway's event envelope. Only the fields the ingest
// path reads are modeled; the body itself is never trusted as proof of
// payment.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData is the event payload.
type WebhookEventData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Status    string          `json:"status"`
	Metadata  WebhookMetadata `json:"metadata"`
}

// WebhookMetadata mirrors the metadata attached at charge initialization.
type WebhookMetadata struct {
	CustomFields []WebhookCustomField `json:"custom_fields"`
}

// WebhookCustomField carries the display name that routes settlement to
// order payment or wallet top-up handling.
type WebhookCustomField struct {
	DisplayName string `json:"display_name"`
}

// DisplayName returns the first custom field's display name, or "".
func (e *WebhookEvent) DisplayName() string {
	if len(e.Data.Metadata.CustomFields) == 0 {
		return ""
	}
	return e.Data.Metadata.CustomFields[0].DisplayName
}
