package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/payment-webhook-service/internal/queue"
	"github.com/carson-networks/payment-webhook-service/internal/storage"
	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

// Webhook is a validated-shape payment notification handed in by the HTTP layer.
type Webhook struct {
	TransactionID      string
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Currency           string
}

// IngestOutcome distinguishes a first sighting from a duplicate delivery.
// Both are success to the sender.
type IngestOutcome int8

const (
	IngestAccepted IngestOutcome = iota
	IngestAlreadyKnown
)

// WebhookService is the ingestion gate: it records each transaction exactly
// once and enqueues exactly one work item for it.
type WebhookService struct {
	storage *storage.Storage
	queue   queue.Queue
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(store *storage.Storage, taskQueue queue.Queue) *WebhookService {
	return &WebhookService{storage: store, queue: taskQueue}
}

// Ingest validates the webhook, inserts the transaction row, and enqueues the
// work item. The insert races against the transaction_id primary key, so of N
// concurrent calls for the same id exactly one sees a fresh row; the rest
// return IngestAlreadyKnown and never enqueue.
func (s *WebhookService) Ingest(ctx context.Context, hook Webhook) (IngestOutcome, error) {
	if err := validateWebhook(hook); err != nil {
		return 0, err
	}

	created, err := s.storage.Transactions.Insert(ctx, &transaction.TransactionCreate{
		TransactionID:      hook.TransactionID,
		SourceAccount:      hook.SourceAccount,
		DestinationAccount: hook.DestinationAccount,
		Amount:             hook.Amount,
		Currency:           hook.Currency,
	})
	if err != nil {
		return 0, &UnavailableError{Op: "transactions.insert", Err: err}
	}
	if !created {
		return IngestAlreadyKnown, nil
	}

	// The row exists; if the publish fails the caller gets a 5xx and the
	// publish-side Msg-Id dedup keeps an operator re-drive single-enqueue.
	if err := s.queue.Publish(ctx, hook.TransactionID); err != nil {
		return 0, &UnavailableError{Op: "queue.publish", Err: err}
	}

	return IngestAccepted, nil
}

func validateWebhook(hook Webhook) error {
	if hook.TransactionID == "" {
		return &ValidationError{Field: "transaction_id", Reason: "must not be empty"}
	}
	if hook.SourceAccount == "" {
		return &ValidationError{Field: "source_account", Reason: "must not be empty"}
	}
	if hook.DestinationAccount == "" {
		return &ValidationError{Field: "destination_account", Reason: "must not be empty"}
	}
	if hook.Currency == "" {
		return &ValidationError{Field: "currency", Reason: "must not be empty"}
	}
	if !hook.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}
