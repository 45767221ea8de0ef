package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payment-webhook-service/internal/service"
)

// GetTransactionInput is the Huma input for looking up a transaction.
type GetTransactionInput struct {
	TransactionID string `path:"transaction_id" doc:"Transaction identifier"`
}

// GetTransactionOutput is the Huma output for looking up a transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionReader is the slice of the transaction service this handler needs.
type transactionReader interface {
	GetTransaction(ctx context.Context, transactionID string) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transactions/{transaction_id}.
type GetTransactionHandler struct {
	Service transactionReader
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionReader) *GetTransactionHandler {
	return &GetTransactionHandler{Service: svc}
}

// Register registers the transaction lookup endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{transaction_id}",
		Summary:     "Get transaction",
		Description: "Returns the current state of a transaction. Callers poll this while a transaction is PROCESSING.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	txn, err := h.Service.GetTransaction(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "transaction "+input.TransactionID+" not found")
		}
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return nil, huma.NewError(http.StatusBadRequest, validationErr.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load transaction", err)
	}

	response := Transaction{
		TransactionID:      txn.TransactionID,
		SourceAccount:      txn.SourceAccount,
		DestinationAccount: txn.DestinationAccount,
		Amount:             txn.Amount.String(),
		Currency:           txn.Currency,
		Status:             string(txn.Status),
		CreatedAt:          txn.CreatedAt.Format(time.RFC3339),
	}
	if txn.ProcessedAt != nil {
		response.ProcessedAt = txn.ProcessedAt.Format(time.RFC3339)
	}

	return &GetTransactionOutput{Body: response}, nil
}
