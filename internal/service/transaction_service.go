package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/payment-webhook-service/internal/storage"
	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	TransactionID      string
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Currency           string
	Status             transaction.Status
	CreatedAt          time.Time
	ProcessedAt        *time.Time
}

// TransactionService is the read-only status lookup used by polling callers.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// GetTransaction returns the current record for the given id, or
// ErrTransactionNotFound.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	if transactionID == "" {
		return nil, &ValidationError{Field: "transaction_id", Reason: "must not be empty"}
	}

	row, err := s.storage.Transactions.FindByID(ctx, transactionID)
	if err != nil {
		return nil, &UnavailableError{Op: "transactions.find", Err: err}
	}
	if row == nil {
		return nil, ErrTransactionNotFound
	}

	return &Transaction{
		TransactionID:      row.TransactionID,
		SourceAccount:      row.SourceAccount,
		DestinationAccount: row.DestinationAccount,
		Amount:             row.Amount,
		Currency:           row.Currency,
		Status:             row.Status,
		CreatedAt:          row.CreatedAt,
		ProcessedAt:        row.ProcessedAt,
	}, nil
}
