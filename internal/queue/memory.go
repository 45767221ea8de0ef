package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is a process-local Queue for tests and broker-less runs. It
// mirrors the JetStream contract: publish dedup by transaction id, delayed
// redelivery on Retry, and a delivery counter per item. It does not survive
// restarts and exists so the worker and gate can be exercised without NATS.
type MemoryQueue struct {
	mu         sync.Mutex
	seen       map[string]struct{}
	closed     bool
	deliveries chan Delivery
	wg         sync.WaitGroup
}

func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer < 1 {
		buffer = 64
	}
	return &MemoryQueue{
		seen:       make(map[string]struct{}),
		deliveries: make(chan Delivery, buffer),
	}
}

func (q *MemoryQueue) Publish(_ context.Context, transactionID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if _, dup := q.seen[transactionID]; dup {
		return nil
	}
	q.seen[transactionID] = struct{}{}

	q.deliveries <- &memoryDelivery{queue: q, transactionID: transactionID, attempt: 1}
	return nil
}

func (q *MemoryQueue) Deliveries() <-chan Delivery {
	return q.deliveries
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	// Wait for pending redelivery timers before closing the channel they send on.
	q.wg.Wait()
	close(q.deliveries)
	return nil
}

func (q *MemoryQueue) redeliver(transactionID string, attempt int, delay time.Duration) {
	q.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer q.wg.Done()
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.closed {
			return
		}
		q.deliveries <- &memoryDelivery{queue: q, transactionID: transactionID, attempt: attempt}
	})
}

type memoryDelivery struct {
	queue         *MemoryQueue
	transactionID string
	attempt       int
}

func (d *memoryDelivery) TransactionID() string { return d.transactionID }

func (d *memoryDelivery) Attempt() int { return d.attempt }

func (d *memoryDelivery) Ack() error { return nil }

func (d *memoryDelivery) Retry(delay time.Duration) error {
	d.queue.redeliver(d.transactionID, d.attempt+1, delay)
	return nil
}

func (d *memoryDelivery) Drop() error { return nil }
