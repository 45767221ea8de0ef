package worker

import (
	"context"
	"time"

	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

// Settler performs the external settlement step for a transaction. Real
// integrations put the payment-gateway call behind this interface; the worker's
// retry logic does not change when the implementation does.
type Settler interface {
	Settle(ctx context.Context, txn *transaction.Transaction) error
}

// SimulatedSettler stands in for the gateway with a fixed delay. It respects
// context cancellation so the worker's settlement timeout applies.
type SimulatedSettler struct {
	Delay time.Duration
}

func (s *SimulatedSettler) Settle(ctx context.Context, _ *transaction.Transaction) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
