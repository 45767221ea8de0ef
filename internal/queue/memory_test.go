package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receiveDelivery(t *testing.T, q *MemoryQueue) Delivery {
	t.Helper()
	select {
	case d := <-q.Deliveries():
		return d
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return nil
	}
}

func TestMemoryQueue_PublishDelivers(t *testing.T) {
	q := NewMemoryQueue(4)

	assert.NoError(t, q.Publish(context.Background(), "txn_1"))

	d := receiveDelivery(t, q)
	assert.Equal(t, "txn_1", d.TransactionID())
	assert.Equal(t, 1, d.Attempt())
}

func TestMemoryQueue_DuplicatePublishIsDeduplicated(t *testing.T) {
	q := NewMemoryQueue(4)

	assert.NoError(t, q.Publish(context.Background(), "txn_1"))
	assert.NoError(t, q.Publish(context.Background(), "txn_1"))

	_ = receiveDelivery(t, q)

	select {
	case d := <-q.Deliveries():
		t.Fatalf("unexpected second delivery for %s", d.TransactionID())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryQueue_RetryRedeliversWithIncrementedAttempt(t *testing.T) {
	q := NewMemoryQueue(4)

	assert.NoError(t, q.Publish(context.Background(), "txn_1"))

	first := receiveDelivery(t, q)
	assert.Equal(t, 1, first.Attempt())
	assert.NoError(t, first.Retry(time.Millisecond))

	second := receiveDelivery(t, q)
	assert.Equal(t, "txn_1", second.TransactionID())
	assert.Equal(t, 2, second.Attempt())
}

func TestMemoryQueue_CloseStopsDeliveries(t *testing.T) {
	q := NewMemoryQueue(4)

	assert.NoError(t, q.Close())

	_, open := <-q.Deliveries()
	assert.False(t, open)

	assert.ErrorIs(t, q.Publish(context.Background(), "txn_1"), ErrClosed)
}
