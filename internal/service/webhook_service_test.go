package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/payment-webhook-service/internal/queue"
	"github.com/carson-networks/payment-webhook-service/internal/storage"
	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

func newTestWebhookService(t *testing.T) (*WebhookService, *transaction.MockITransactionTable, *queue.MockQueue) {
	t.Helper()
	mockTable := transaction.NewMockITransactionTable(t)
	mockQueue := queue.NewMockQueue(t)
	store := &storage.Storage{Transactions: mockTable}
	svc := NewWebhookService(store, mockQueue)
	return svc, mockTable, mockQueue
}

func validHook() Webhook {
	return Webhook{
		TransactionID:      "txn_abc123def456",
		SourceAccount:      "acc_user_789",
		DestinationAccount: "acc_merchant_456",
		Amount:             decimal.RequireFromString("1500"),
		Currency:           "INR",
	}
}

// -- Ingest tests --

func TestIngest_Accepted(t *testing.T) {
	svc, mockTable, mockQueue := newTestWebhookService(t)
	hook := validHook()

	mockTable.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.TransactionID == hook.TransactionID &&
			c.SourceAccount == hook.SourceAccount &&
			c.DestinationAccount == hook.DestinationAccount &&
			c.Amount.Equal(hook.Amount) &&
			c.Currency == hook.Currency
	})).Return(true, nil)
	mockQueue.EXPECT().Publish(mock.Anything, hook.TransactionID).Return(nil).Once()

	outcome, err := svc.Ingest(context.Background(), hook)

	assert.NoError(t, err)
	assert.Equal(t, IngestAccepted, outcome)
}

func TestIngest_AlreadyKnown_DoesNotEnqueue(t *testing.T) {
	svc, mockTable, mockQueue := newTestWebhookService(t)
	hook := validHook()

	mockTable.EXPECT().Insert(mock.Anything, mock.Anything).Return(false, nil)

	outcome, err := svc.Ingest(context.Background(), hook)

	assert.NoError(t, err)
	assert.Equal(t, IngestAlreadyKnown, outcome)
	mockQueue.AssertNotCalled(t, "Publish")
}

func TestIngest_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Webhook)
		field  string
	}{
		{"empty transaction id", func(h *Webhook) { h.TransactionID = "" }, "transaction_id"},
		{"empty source account", func(h *Webhook) { h.SourceAccount = "" }, "source_account"},
		{"empty destination account", func(h *Webhook) { h.DestinationAccount = "" }, "destination_account"},
		{"empty currency", func(h *Webhook) { h.Currency = "" }, "currency"},
		{"zero amount", func(h *Webhook) { h.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(h *Webhook) { h.Amount = decimal.RequireFromString("-5") }, "amount"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, mockTable, mockQueue := newTestWebhookService(t)
			hook := validHook()
			tc.mutate(&hook)

			_, err := svc.Ingest(context.Background(), hook)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
			mockTable.AssertNotCalled(t, "Insert")
			mockQueue.AssertNotCalled(t, "Publish")
		})
	}
}

func TestIngest_StoreError(t *testing.T) {
	svc, mockTable, mockQueue := newTestWebhookService(t)

	mockTable.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(false, errors.New("connection refused"))

	_, err := svc.Ingest(context.Background(), validHook())

	var unavailableErr *UnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
	assert.Equal(t, "transactions.insert", unavailableErr.Op)
	mockQueue.AssertNotCalled(t, "Publish")
}

func TestIngest_PublishError(t *testing.T) {
	svc, mockTable, mockQueue := newTestWebhookService(t)
	hook := validHook()

	mockTable.EXPECT().Insert(mock.Anything, mock.Anything).Return(true, nil)
	mockQueue.EXPECT().Publish(mock.Anything, hook.TransactionID).Return(errors.New("no responders"))

	_, err := svc.Ingest(context.Background(), hook)

	var unavailableErr *UnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
	assert.Equal(t, "queue.publish", unavailableErr.Op)
}

// raceTransactionTable is a minimal in-memory table whose Insert is atomic,
// for exercising concurrent duplicate ingestion.
type raceTransactionTable struct {
	mu   sync.Mutex
	rows map[string]struct{}
}

func (r *raceTransactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[create.TransactionID]; exists {
		return false, nil
	}
	r.rows[create.TransactionID] = struct{}{}
	return true, nil
}

func (r *raceTransactionTable) FindByID(context.Context, string) (*transaction.Transaction, error) {
	return nil, nil
}

func (r *raceTransactionTable) CompareAndSetStatus(context.Context, string, transaction.Status, transaction.Status, time.Time) (transaction.CASOutcome, error) {
	return transaction.CASNotFound, nil
}

func TestIngest_ConcurrentDuplicates_SingleRowSingleEnqueue(t *testing.T) {
	table := &raceTransactionTable{rows: make(map[string]struct{})}
	taskQueue := queue.NewMemoryQueue(16)
	svc := NewWebhookService(&storage.Storage{Transactions: table}, taskQueue)
	hook := validHook()

	const callers = 10
	outcomes := make([]IngestOutcome, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			outcomes[idx], errs[idx] = svc.Ingest(context.Background(), hook)
		}(i)
	}
	wg.Wait()

	accepted := 0
	alreadyKnown := 0
	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
		switch outcomes[i] {
		case IngestAccepted:
			accepted++
		case IngestAlreadyKnown:
			alreadyKnown++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, callers-1, alreadyKnown)
	assert.Len(t, table.rows, 1)

	// Exactly one work item was ever enqueued for the id.
	assert.NoError(t, taskQueue.Close())
	deliveries := 0
	for range taskQueue.Deliveries() {
		deliveries++
	}
	assert.Equal(t, 1, deliveries)
}
