package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payment-webhook-service/internal/queue"
	"github.com/carson-networks/payment-webhook-service/internal/storage"
	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

// Config bounds the worker's settlement attempts and backoff.
type Config struct {
	MaxAttempts         int
	SettlementTimeout   time.Duration
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
}

// Worker consumes work items and advances transactions to a terminal state.
// All state writes go through the store's guarded CompareAndSetStatus, so
// redelivered items are safe: a delivery that lost the race observes the
// terminal state and acknowledges without side effects.
type Worker struct {
	storage *storage.Storage
	settler Settler
	config  Config
	logger  *logrus.Logger
}

func NewWorker(store *storage.Storage, settler Settler, config Config, logger *logrus.Logger) *Worker {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Worker{
		storage: store,
		settler: settler,
		config:  config,
		logger:  logger,
	}
}

// Handle processes one delivery end to end and settles its fate on the queue:
// ack after a terminal write, retry with backoff on a settlement failure with
// attempts remaining, drop when the record is missing or attempts are exhausted.
func (w *Worker) Handle(ctx context.Context, d queue.Delivery) {
	log := w.logger.WithFields(logrus.Fields{
		"transactionID": d.TransactionID(),
		"attempt":       d.Attempt(),
	})
	log.Info("Worker.start")

	txn, err := w.storage.Transactions.FindByID(ctx, d.TransactionID())
	if err != nil {
		log.WithError(err).Error("Worker.load")
		_ = d.Retry(w.backoff(d.Attempt()))
		return
	}
	if txn == nil {
		// A row that was never created will not appear on a later delivery;
		// retrying cannot help. Out-of-band alerting picks this up.
		log.Error("Worker.missingRecord")
		_ = d.Drop()
		return
	}

	switch txn.Status {
	case transaction.StatusProcessed:
		// Redelivery of an already-settled item.
		log.Info("Worker.alreadyProcessed")
		_ = d.Ack()
		return
	case transaction.StatusFailed:
		// A prior attempt recorded FAILED before requesting redelivery.
		// Re-arm to PROCESSING explicitly so the settlement guard can apply.
		outcome, err := w.storage.Transactions.CompareAndSetStatus(ctx,
			txn.TransactionID, transaction.StatusFailed, transaction.StatusProcessing, time.Time{})
		if err != nil {
			log.WithError(err).Error("Worker.rearm")
			_ = d.Retry(w.backoff(d.Attempt()))
			return
		}
		if outcome != transaction.CASUpdated {
			// Another consumer moved the row first; redeliver and re-evaluate.
			log.Info("Worker.rearmLost")
			_ = d.Retry(w.backoff(d.Attempt()))
			return
		}
		txn.Status = transaction.StatusProcessing
	}

	settleCtx, cancel := context.WithTimeout(ctx, w.config.SettlementTimeout)
	settleErr := w.settler.Settle(settleCtx, txn)
	cancel()

	now := time.Now().UTC()
	if settleErr == nil {
		outcome, err := w.storage.Transactions.CompareAndSetStatus(ctx,
			txn.TransactionID, transaction.StatusProcessing, transaction.StatusProcessed, now)
		if err != nil {
			log.WithError(err).Error("Worker.markProcessed")
			_ = d.Retry(w.backoff(d.Attempt()))
			return
		}
		switch outcome {
		case transaction.CASUpdated:
			log.Info("Worker.processed")
			_ = d.Ack()
		case transaction.CASStaleState:
			// A concurrent delivery already wrote the terminal state.
			log.Info("Worker.staleState")
			_ = d.Ack()
		case transaction.CASNotFound:
			log.Error("Worker.missingRecord")
			_ = d.Drop()
		}
		return
	}

	// ProcessingFailure: record FAILED under the same guard, then decide
	// between redelivery and abandonment. A timeout is treated like any other
	// settlement failure.
	log.WithError(settleErr).Warn("Worker.settleFailed")
	if _, err := w.storage.Transactions.CompareAndSetStatus(ctx,
		txn.TransactionID, transaction.StatusProcessing, transaction.StatusFailed, now); err != nil {
		log.WithError(err).Error("Worker.markFailed")
	}

	if d.Attempt() >= w.config.MaxAttempts {
		log.Error("Worker.abandoned")
		_ = d.Drop()
		return
	}
	_ = d.Retry(w.backoff(d.Attempt()))
}

// backoff doubles per delivery, capped at RetryMaxBackoff.
func (w *Worker) backoff(attempt int) time.Duration {
	delay := w.config.RetryInitialBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= w.config.RetryMaxBackoff {
			return w.config.RetryMaxBackoff
		}
	}
	return delay
}
