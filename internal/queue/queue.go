// Package queue carries transaction ids from the webhook intake to the
// settlement workers with at-least-once delivery. Consumers acknowledge a
// delivery only after the attempt's terminal store write, so a crash
// mid-processing causes redelivery rather than silent loss.
package queue

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("queue is closed")

// Task is the wire payload of a work item.
type Task struct {
	TransactionID string `json:"transaction_id"`
}

// Delivery is one receipt of a work item. The same item may be delivered more
// than once; Attempt reports the 1-based delivery count so callers can bound
// their retries. Exactly one of Ack, Retry, or Drop should be called.
type Delivery interface {
	TransactionID() string
	Attempt() int

	// Ack marks the item done; no further deliveries occur.
	Ack() error
	// Retry schedules a redelivery after the given delay.
	Retry(delay time.Duration) error
	// Drop abandons the item without redelivery.
	Drop() error
}

// Queue is a durable at-least-once work-item channel.
//
//go:generate mockery --name Queue --output mock_Queue.go
type Queue interface {
	// Publish enqueues a work item for the given transaction. Publishing the
	// same id twice within the dedup window yields a single delivery.
	Publish(ctx context.Context, transactionID string) error
	// Deliveries returns the channel consumers drain. It is closed by Close.
	Deliveries() <-chan Delivery
	Close() error
}
