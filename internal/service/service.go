package service

import (
	"github.com/carson-networks/payment-webhook-service/internal/queue"
	"github.com/carson-networks/payment-webhook-service/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Webhook     *WebhookService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage and task queue.
func NewService(store *storage.Storage, taskQueue queue.Queue) *Service {
	return &Service{
		Webhook:     NewWebhookService(store, taskQueue),
		Transaction: NewTransactionService(store),
	}
}
