package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction. PROCESSED and FAILED are
// terminal; rows only leave FAILED through an explicit re-arm by the worker.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusProcessed  Status = "PROCESSED"
	StatusFailed     Status = "FAILED"
)

// Transaction represents a transaction record.
type Transaction struct {
	TransactionID      string
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Currency           string
	Status             Status
	CreatedAt          time.Time
	ProcessedAt        *time.Time // nil while status is PROCESSING
}

// TransactionCreate is the input for recording a newly received transaction.
// Rows always start in PROCESSING.
type TransactionCreate struct {
	TransactionID      string
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Currency           string
}

// CASOutcome reports why a CompareAndSetStatus call did or did not apply.
type CASOutcome int8

const (
	CASUpdated CASOutcome = iota
	CASStaleState
	CASNotFound
)

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
//
// Insert must be atomic against the transaction_id uniqueness constraint:
// concurrent inserts of the same id see exactly one true result.
// CompareAndSetStatus is the only mutation primitive; it never overwrites a
// state the caller did not name as expected.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (bool, error)
	FindByID(ctx context.Context, id string) (*Transaction, error)
	CompareAndSetStatus(ctx context.Context, id string, expected, next Status, at time.Time) (CASOutcome, error)
}
