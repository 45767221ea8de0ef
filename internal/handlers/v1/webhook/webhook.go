package webhook

// WebhookResponse is the API response for a received webhook. Both first
// deliveries and duplicates get it; idempotency is transparent to the sender.
type WebhookResponse struct {
	Message       string `json:"message" doc:"Human-readable outcome"`
	TransactionID string `json:"transaction_id" doc:"Echoed transaction identifier"`
}
