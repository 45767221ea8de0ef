package webhook

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/payment-webhook-service/internal/service"
)

// ReceiveWebhookBody is the request body for the transaction webhook.
type ReceiveWebhookBody struct {
	TransactionID      string `json:"transaction_id" required:"true" minLength:"1" doc:"Unique transaction identifier, doubles as the idempotency key"`
	SourceAccount      string `json:"source_account" required:"true" minLength:"1" doc:"Source account identifier"`
	DestinationAccount string `json:"destination_account" required:"true" minLength:"1" doc:"Destination account identifier"`
	Amount             string `json:"amount" required:"true" doc:"Decimal amount, must be greater than zero"`
	Currency           string `json:"currency" required:"true" minLength:"1" doc:"Currency code (e.g. INR, USD)"`
}

// ReceiveWebhookInput is the Huma input for the webhook endpoint.
type ReceiveWebhookInput struct {
	Body ReceiveWebhookBody
}

// ReceiveWebhookOutput is the Huma output for the webhook endpoint.
type ReceiveWebhookOutput struct {
	Body WebhookResponse
}

// webhookIngestor is the slice of the webhook service this handler needs.
type webhookIngestor interface {
	Ingest(ctx context.Context, hook service.Webhook) (service.IngestOutcome, error)
}

// ReceiveWebhookHandler handles POST /v1/webhooks/transactions.
type ReceiveWebhookHandler struct {
	Service webhookIngestor
}

// NewReceiveWebhookHandler creates a new ReceiveWebhookHandler.
func NewReceiveWebhookHandler(svc webhookIngestor) *ReceiveWebhookHandler {
	return &ReceiveWebhookHandler{Service: svc}
}

// Register registers the webhook endpoint with the Huma API.
func (h *ReceiveWebhookHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "receive-transaction-webhook",
		Method:        http.MethodPost,
		Path:          "/v1/webhooks/transactions",
		Summary:       "Receive transaction webhook",
		Description:   "Records a payment transaction and queues it for processing. Duplicate deliveries of the same transaction_id are acknowledged without effect.",
		Tags:          []string{"Webhooks"},
		DefaultStatus: http.StatusAccepted,
	}, h.handle)
}

func (h *ReceiveWebhookHandler) handle(ctx context.Context, input *ReceiveWebhookInput) (*ReceiveWebhookOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	outcome, err := h.Service.Ingest(ctx, service.Webhook{
		TransactionID:      input.Body.TransactionID,
		SourceAccount:      input.Body.SourceAccount,
		DestinationAccount: input.Body.DestinationAccount,
		Amount:             amount,
		Currency:           input.Body.Currency,
	})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return nil, huma.NewError(http.StatusBadRequest, validationErr.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to ingest webhook", err)
	}

	message := "Transaction accepted for processing"
	if outcome == service.IngestAlreadyKnown {
		message = "Transaction already received"
	}

	return &ReceiveWebhookOutput{
		Body: WebhookResponse{
			Message:       message,
			TransactionID: input.Body.TransactionID,
		},
	}, nil
}
